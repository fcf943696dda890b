package model

import "errors"

var (
	// ErrModelNotLoaded indica que nenhuma planilha foi carregada ainda
	ErrModelNotLoaded = errors.New("nenhum modelo carregado")

	// ErrTeamCapacityUnavailable indica que a análise de equipe foi omitida
	ErrTeamCapacityUnavailable = errors.New("análise de capacidade da equipe indisponível")
)
