package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
)

// DefaultPersona is used when no persona file is configured
const DefaultPersona = "Você é Fernanda, assistente virtual acolhedora da clínica odontológica."

// Clinic holds CLI flags for the clinic profile and knowledge base
type Clinic struct {
	configPath  string
	personaPath string
}

// clinicFile is the TOML shape of the clinic configuration file
type clinicFile struct {
	Clinic   clinicSection  `toml:"clinic"`
	Services []serviceEntry `toml:"service"`
}

type clinicSection struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
	Hours   string `toml:"hours"`
	Phone   string `toml:"phone"`
}

type serviceEntry struct {
	Service     string   `toml:"service"`
	Specialty   string   `toml:"specialty"`
	Keywords    []string `toml:"keywords"`
	Urgency     string   `toml:"urgency"`
	DurationMin int      `toml:"duration_min"`
}

// Validate checks one knowledge base row
func (s *serviceEntry) Validate() error {
	if s.Service == "" {
		return goerr.New("service name is required")
	}
	if s.Specialty == "" {
		return goerr.New("service specialty is required", goerr.V("service", s.Service))
	}
	if len(s.Keywords) == 0 {
		return goerr.New("service needs at least one keyword", goerr.V("service", s.Service))
	}
	return nil
}

// Flags returns CLI flags for clinic configuration
func (c *Clinic) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "clinic-config",
			Usage:       "Path to the clinic profile TOML file",
			Sources:     cli.EnvVars("FERNANDA_CLINIC_CONFIG"),
			Destination: &c.configPath,
		},
		&cli.StringFlag{
			Name:        "persona-file",
			Usage:       "Path to the assistant persona text file",
			Sources:     cli.EnvVars("FERNANDA_PERSONA_FILE"),
			Destination: &c.personaPath,
		},
	}
}

// Configure loads the clinic profile, knowledge base and persona text.
// Missing files fall back to a minimal built-in profile so the server
// can start with no configuration at all.
func (c *Clinic) Configure() (*model.Clinic, string, error) {
	clinic := defaultClinic()

	if c.configPath != "" {
		data, err := os.ReadFile(c.configPath)
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to read clinic config", goerr.V("path", c.configPath))
		}

		var file clinicFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, "", goerr.Wrap(err, "failed to parse clinic config", goerr.V("path", c.configPath))
		}

		if file.Clinic.Name != "" {
			clinic.Name = file.Clinic.Name
		}
		clinic.Address = file.Clinic.Address
		clinic.Hours = file.Clinic.Hours
		clinic.Phone = file.Clinic.Phone

		if len(file.Services) > 0 {
			clinic.Services = clinic.Services[:0]
			for i, svc := range file.Services {
				if err := svc.Validate(); err != nil {
					return nil, "", goerr.Wrap(err, "invalid knowledge base entry", goerr.V("index", i))
				}
				clinic.Services = append(clinic.Services, model.KnowledgeEntry{
					Service:     svc.Service,
					Specialty:   svc.Specialty,
					Keywords:    svc.Keywords,
					Urgency:     svc.Urgency,
					DurationMin: svc.DurationMin,
				})
			}
		}
	}

	persona := DefaultPersona
	if c.personaPath != "" {
		data, err := os.ReadFile(c.personaPath)
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to read persona file", goerr.V("path", c.personaPath))
		}
		persona = string(data)
	}

	return clinic, persona, nil
}

// defaultClinic mirrors the built-in profile used when no config file
// is present.
func defaultClinic() *model.Clinic {
	return &model.Clinic{
		Name: "Clínica Sorriso & Saúde",
		Services: []model.KnowledgeEntry{
			{
				Service:     "Triagem de dor",
				Specialty:   "Endodontia",
				Keywords:    []string{"dor", "urgente", "emergência"},
				Urgency:     "Alto",
				DurationMin: 40,
			},
			{
				Service:     "Limpeza",
				Specialty:   "Clínica Geral",
				Keywords:    []string{"limpeza", "profilaxia"},
				Urgency:     "Baixo",
				DurationMin: 45,
			},
		},
	}
}
