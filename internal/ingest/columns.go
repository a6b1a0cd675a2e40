package ingest

import "strings"

// Canonical column names after header normalization.
const (
	colDriver     = "motorista"
	colVehicle    = "nome_do_veiculo"
	colDate       = "data_evento"
	colViolation  = "violacao"
	colDuration   = "duracao"
	colSpeedMax   = "velocidade_maxima"
	colSpeedLimit = "valor_final_da_velocidade_configurada"
	colRpmMax     = "rpm_maximo"
	colRpmLimit   = "valor_final_do_rpm_configurado"
	colDistance   = "distancia"
	colBrakePedal = "pedal_de_freio"
	colStartLat   = "latitude_inicial"
	colStartLon   = "longitude_inicial"
	colEndLat     = "latitude_final"
	colEndLon     = "longitude_final"
)

// columnAliases maps each canonical column to the normalized header names it
// may appear under in a telemetry export. Accented variants survive header
// normalization (only ã and ç are folded), so both spellings are accepted.
var columnAliases = map[string][]string{
	colDriver:     {"motorista"},
	colVehicle:    {"nome_do_veiculo", "nome_do_veículo"},
	colDate:       {"data_evento", "data_inicial_da_violacao"},
	colViolation:  {"violacao"},
	colDuration:   {"duracao"},
	colSpeedMax:   {"velocidade_maxima", "velocidade_máxima"},
	colSpeedLimit: {"valor_final_da_velocidade_configurada"},
	colRpmMax:     {"rpm_maximo", "rpm_máximo"},
	colRpmLimit:   {"valor_final_do_rpm_configurado"},
	colDistance:   {"distancia", "distância"},
	colBrakePedal: {"pedal_de_freio"},
	colStartLat:   {"latitude_inicial"},
	colStartLon:   {"longitude_inicial"},
	colEndLat:     {"latitude_final"},
	colEndLon:     {"longitude_final"},
}

// normalizeHeader mirrors the legacy export convention: trim, lowercase,
// spaces to underscores, ã→a and ç→c. Other accents are left alone and
// handled through aliases.
func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "ã", "a")
	name = strings.ReplaceAll(name, "ç", "c")
	return name
}

// columnIndex resolves canonical columns to record positions. Missing
// optional columns resolve to -1.
type columnIndex map[string]int

func resolveColumns(header []string) columnIndex {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		normalized := normalizeHeader(name)
		if _, seen := positions[normalized]; !seen {
			positions[normalized] = i
		}
	}

	idx := make(columnIndex, len(columnAliases))
	for canonical, aliases := range columnAliases {
		idx[canonical] = -1
		for _, alias := range aliases {
			if pos, ok := positions[alias]; ok {
				idx[canonical] = pos
				break
			}
		}
	}
	return idx
}

func (idx columnIndex) value(record []string, canonical string) string {
	pos, ok := idx[canonical]
	if !ok || pos < 0 || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func (idx columnIndex) has(canonical string) bool {
	pos, ok := idx[canonical]
	return ok && pos >= 0
}
