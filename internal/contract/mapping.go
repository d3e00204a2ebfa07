package contract

import (
	"fmt"

	"github.com/spf13/viper"
)

// TableMapping resolves the five canonical tables to their names in the
// source document.
type TableMapping struct {
	Teams       string `mapstructure:"teams"`
	People      string `mapstructure:"people"`
	Epics       string `mapstructure:"epics"`
	Features    string `mapstructure:"features"`
	Assignments string `mapstructure:"assignments"`
}

// ColumnMapping resolves canonical column names to source-specific ones.
// Lookup against actual row keys is case- and punctuation-insensitive, so
// mapped names survive the usual Grist column renames.
type ColumnMapping struct {
	PersonLabel string `mapstructure:"person_label"`

	TeamName  string `mapstructure:"team_name"`
	TeamEpics string `mapstructure:"team_epics"`

	EpicName          string `mapstructure:"epic_name"`
	EpicDescription   string `mapstructure:"epic_description"`
	EpicIntentionPI   string `mapstructure:"epic_intention_pi"`
	EpicIntentionNext string `mapstructure:"epic_intention_next"`
	EpicTeam          string `mapstructure:"epic_team"`

	FeatureName        string `mapstructure:"feature_name"`
	FeatureDescription string `mapstructure:"feature_description"`
	FeatureEpic        string `mapstructure:"feature_epic"`
	FeaturePI          string `mapstructure:"feature_pi"`

	AssignTeam   string `mapstructure:"assign_team"`
	AssignEpic   string `mapstructure:"assign_epic"`
	AssignPerson string `mapstructure:"assign_person"`
	AssignCharge string `mapstructure:"assign_charge"`
	AssignRole   string `mapstructure:"assign_role"`
}

// Mapping is the full configuration surface the model builder consumes:
// table names, column names, and role spellings.
type Mapping struct {
	Tables  TableMapping  `mapstructure:"tables"`
	Columns ColumnMapping `mapstructure:"columns"`
}

// DefaultMapping returns the mapping used by the reference SDID Grist
// documents. A mapping file only needs to override what differs.
func DefaultMapping() *Mapping {
	return &Mapping{
		Tables: TableMapping{
			Teams:       "Equipes",
			People:      "Personnes",
			Epics:       "Epics",
			Features:    "Features",
			Assignments: "Affectations",
		},
		Columns: ColumnMapping{
			PersonLabel:        "Nom",
			TeamName:           "Nom",
			TeamEpics:          "Epics",
			EpicName:           "Nom",
			EpicDescription:    "Description",
			EpicIntentionPI:    "Intention_du_PI",
			EpicIntentionNext:  "Intention_prochain_Increment",
			EpicTeam:           "Equipe",
			FeatureName:        "Nom",
			FeatureDescription: "Description",
			FeatureEpic:        "Epic",
			FeaturePI:          "PI",
			AssignTeam:         "Equipe",
			AssignEpic:         "Epic",
			AssignPerson:       "Personne",
			AssignCharge:       "Charge",
			AssignRole:         "Role",
		},
	}
}

// LoadMapping reads a mapping YAML file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func LoadMapping(path string) (*Mapping, error) {
	m := DefaultMapping()
	if path == "" {
		return m, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading mapping file: %w", err)
	}
	if err := v.Unmarshal(m); err != nil {
		return nil, fmt.Errorf("unable to unmarshal mapping: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every table the pipeline reads is mapped.
func (m *Mapping) Validate() error {
	tables := map[string]string{
		"teams":       m.Tables.Teams,
		"people":      m.Tables.People,
		"epics":       m.Tables.Epics,
		"features":    m.Tables.Features,
		"assignments": m.Tables.Assignments,
	}
	for key, name := range tables {
		if name == "" {
			return fmt.Errorf("mapping incomplete: tables.%s missing", key)
		}
	}
	return nil
}
