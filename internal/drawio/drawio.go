// Package drawio renders a layout into an uncompressed diagrams.net file.
package drawio

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/orgviz/orgviz/schema"
)

type mxFile struct {
	XMLName    xml.Name  `xml:"mxfile"`
	Host       string    `xml:"host,attr"`
	Compressed string    `xml:"compressed,attr"`
	Diagram    mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	Name  string       `xml:"name,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	Dx         string `xml:"dx,attr"`
	Dy         string `xml:"dy,attr"`
	Grid       string `xml:"grid,attr"`
	GridSize   string `xml:"gridSize,attr"`
	Guides     string `xml:"guides,attr"`
	Tooltips   string `xml:"tooltips,attr"`
	Connect    string `xml:"connect,attr"`
	Arrows     string `xml:"arrows,attr"`
	Fold       string `xml:"fold,attr"`
	Page       string `xml:"page,attr"`
	PageScale  string `xml:"pageScale,attr"`
	PageWidth  string `xml:"pageWidth,attr"`
	PageHeight string `xml:"pageHeight,attr"`
	Math       string `xml:"math,attr"`
	Shadow     string `xml:"shadow,attr"`
	Root       mxRoot `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X      int    `xml:"x,attr"`
	Y      int    `xml:"y,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	As     string `xml:"as,attr"`
}

// Cell styles. Teams are swimlane containers; separated epics share the
// amber palette of the under-assignment alert so they read as warnings.
const (
	cartoucheStyle  = "rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;align=center;verticalAlign=middle;fontSize=18;fontStyle=1;fillColor=#f5f5f5;strokeColor=#999999;spacingLeft=10;spacingRight=10;"
	alertLeftStyle  = "rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;align=left;verticalAlign=top;fontSize=12;spacing=6;spacingLeft=12;spacingRight=10;fillColor=#fde2e2;strokeColor=#c0392b;"
	alertRightStyle = "rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;align=left;verticalAlign=top;fontSize=12;spacing=6;spacingLeft=12;spacingRight=10;fillColor=#fff3cd;strokeColor=#d6b656;"
	teamStyle       = "swimlane;rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;startSize=40;fillColor=#ffffff;strokeColor=#666666;fontSize=14;spacingLeft=10;spacingRight=8;"
	teamInfoStyle   = "rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;align=left;verticalAlign=top;fontSize=11;spacing=6;spacingLeft=12;spacingRight=10;fillColor=#f8f9fa;strokeColor=#b0b0b0;"
	epicStyle       = "rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;align=left;verticalAlign=top;fontSize=12;spacing=6;spacingLeft=12;spacingRight=10;fillColor=#dae8fc;strokeColor=#6c8ebf;"
	epicSepStyle    = "rounded=1;arcSize=6;absoluteArcSize=1;whiteSpace=wrap;html=1;align=left;verticalAlign=top;fontSize=12;spacing=6;spacingLeft=12;spacingRight=10;fillColor=#fff2cc;strokeColor=#d6b656;"
)

// WriteDiagram renders the layout and writes it to path, creating the
// directory as needed.
func WriteDiagram(path string, lay *schema.Layout) error {
	data, err := Render(lay)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Render produces the uncompressed mxfile document. Cell ids are
// sequential, so identical layouts render to identical bytes.
func Render(lay *schema.Layout) ([]byte, error) {
	geo := computeGeometry(lay)

	root := mxRoot{Cells: []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}}
	nextID := 2
	addCell := func(value, style, parent string, b box) string {
		id := strconv.Itoa(nextID)
		nextID++
		root.Cells = append(root.Cells, mxCell{
			ID: id, Value: value, Style: style, Vertex: "1", Parent: parent,
			Geometry: &mxGeometry{X: b.X, Y: b.Y, Width: b.W, Height: b.H, As: "geometry"},
		})
		return id
	}

	addCell(cartoucheValue(lay.Cartouche), cartoucheStyle, "1", geo.Cartouche)

	for _, block := range lay.BlocksOfKind(schema.MultiEpicRosterBlock) {
		addCell(rosterValue(block), alertLeftStyle, "1", geo.Rosters[block.ID])
	}
	for _, block := range lay.BlocksOfKind(schema.UnderAssignedRosterBlock) {
		addCell(rosterValue(block), alertRightStyle, "1", geo.Rosters[block.ID])
	}

	teamNames := make(map[string]string)
	for i := range lay.Blocks {
		block := lay.Blocks[i]
		if block.Kind != schema.TeamContainerBlock {
			continue
		}
		teamNames[block.ID] = block.Name
		tb := geo.Teams[block.ID]
		teamCellID := addCell("👥 "+esc(block.Name), teamStyle, "1", tb)

		ib := geo.TeamInfos[block.ID]
		addCell(teamInfoValue(block), teamInfoStyle, teamCellID, ib.relativeTo(tb))

		for j := range block.Children {
			epic := block.Children[j]
			eb := geo.Epics[epic.ID]
			addCell(epicValue(epic, ""), epicStyle, teamCellID, eb.relativeTo(tb))
		}
	}

	for i := range lay.Blocks {
		block := lay.Blocks[i]
		if block.Kind != schema.SeparatedEpicBlock {
			continue
		}
		addCell(epicValue(block, teamNames[block.HomeTeamID]), epicSepStyle, "1", geo.Epics[block.ID])
	}

	doc := mxFile{
		Host:       "app.diagrams.net",
		Compressed: "false",
		Diagram: mxDiagram{
			Name: "PI Planning",
			Model: mxGraphModel{
				Dx: "1654", Dy: "1169", Grid: "1", GridSize: "10", Guides: "1",
				Tooltips: "1", Connect: "1", Arrows: "1", Fold: "1", Page: "1",
				PageScale: "1", PageWidth: "1654", PageHeight: "1169",
				Math: "0", Shadow: "0",
				Root: root,
			},
		},
	}

	data, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagram: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
