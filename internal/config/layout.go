package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cleberrangel/capacidad-recursos-api/internal/capacity"
)

// ErrInvalidLayout indica arquivo de layout ilegível ou inconsistente
var ErrInvalidLayout = errors.New("layout inválido")

// SheetNames são os nomes das abas reconhecidas
type SheetNames struct {
	Resumen   string `yaml:"resumen" validate:"required"`
	Proyectos string `yaml:"proyectos" validate:"required"`
	Recursos  string `yaml:"recursos" validate:"required"`
	Matriz    string `yaml:"matriz" validate:"required"`
	Tareas    string `yaml:"tareas" validate:"required"`
	Solapes   string `yaml:"solapamientos" validate:"required"`
	Timeline  string `yaml:"timeline" validate:"required"`
	Metricas  string `yaml:"metricas" validate:"required"`
	Horas     string `yaml:"horas" validate:"required"`
}

// MatrixLayout posiciona as colunas de recursos na matriz
type MatrixLayout struct {
	FirstResourceColumn int `yaml:"first_resource_column" validate:"min=1"`
	MaxResourceColumns  int `yaml:"max_resource_columns" validate:"min=0"`
}

// CapacityLayout localiza a coluna de horas disponíveis
type CapacityLayout struct {
	HoursHeaders []string `yaml:"hours_headers" validate:"dive,required"`
	HoursColumn  int      `yaml:"hours_column" validate:"min=1"`
}

// TeamLayout localiza os totais da equipe
type TeamLayout struct {
	AvailableLabels   []string `yaml:"available_labels" validate:"dive,required"`
	RequiredLabels    []string `yaml:"required_labels" validate:"dive,required"`
	HeuristicFallback bool     `yaml:"heuristic_fallback"`
	HeuristicMin      float64  `yaml:"heuristic_min" validate:"gte=0"`
}

// Stages liga ou desliga as etapas finais do pipeline
type Stages struct {
	ResourceCapacity bool `yaml:"resource_capacity"`
	TeamCapacity     bool `yaml:"team_capacity"`
}

// Layout descreve a estrutura esperada da planilha
type Layout struct {
	Sheets   SheetNames     `yaml:"sheets"`
	Matrix   MatrixLayout   `yaml:"matrix"`
	Capacity CapacityLayout `yaml:"capacity"`
	Team     TeamLayout     `yaml:"team"`
	Stages   Stages         `yaml:"stages"`
}

// DefaultLayout retorna o layout padrão da planilha de capacidade
func DefaultLayout() *Layout {
	matrix := capacity.DefaultMatrixOptions()
	resolver := capacity.DefaultResolverOptions()
	team := capacity.DefaultTeamOptions()

	return &Layout{
		Sheets: SheetNames{
			Resumen:   "Dashboard_Resumen",
			Proyectos: "Proyectos",
			Recursos:  "Recursos",
			Matriz:    "Matriz_Horas",
			Tareas:    "Tareas",
			Solapes:   "Solapamientos",
			Timeline:  "Timeline",
			Metricas:  "Metricas_Graficos",
			Horas:     "Horas",
		},
		Matrix: MatrixLayout{
			FirstResourceColumn: matrix.FirstResourceColumn,
			MaxResourceColumns:  matrix.MaxResourceColumns,
		},
		Capacity: CapacityLayout{
			HoursHeaders: resolver.HoursHeaders,
			HoursColumn:  resolver.HoursColumn,
		},
		Team: TeamLayout{
			AvailableLabels:   team.AvailableLabels,
			RequiredLabels:    team.RequiredLabels,
			HeuristicFallback: team.HeuristicFallback,
			HeuristicMin:      team.HeuristicMin,
		},
		Stages: Stages{ResourceCapacity: true, TeamCapacity: true},
	}
}

// LoadLayout lê o layout YAML; caminho vazio retorna o layout padrão.
// Campos ausentes no arquivo mantêm o valor padrão.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return ParseLayout(data)
}

// ParseLayout decodifica e valida um layout YAML sobre os valores padrão
func ParseLayout(data []byte) (*Layout, error) {
	layout := DefaultLayout()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(layout); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

var validate = validator.New()

// Validate verifica as regras declaradas nas tags
func (l *Layout) Validate() error {
	if err := validate.Struct(l); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: campo %s falhou na regra %q", ErrInvalidLayout, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return nil
}

// MatrixOptions converte para as opções do indexador
func (l *Layout) MatrixOptions() capacity.MatrixOptions {
	return capacity.MatrixOptions{
		FirstResourceColumn: l.Matrix.FirstResourceColumn,
		MaxResourceColumns:  l.Matrix.MaxResourceColumns,
	}
}

// ResolverOptions converte para as opções do resolvedor de capacidade
func (l *Layout) ResolverOptions() capacity.ResolverOptions {
	return capacity.ResolverOptions{
		HoursHeaders: l.Capacity.HoursHeaders,
		HoursColumn:  l.Capacity.HoursColumn,
	}
}

// TeamOptions converte para as opções da análise de equipe
func (l *Layout) TeamOptions() capacity.TeamOptions {
	return capacity.TeamOptions{
		AvailableLabels:   l.Team.AvailableLabels,
		RequiredLabels:    l.Team.RequiredLabels,
		HeuristicFallback: l.Team.HeuristicFallback,
		HeuristicMin:      l.Team.HeuristicMin,
	}
}
