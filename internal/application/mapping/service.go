package mapping

import (
	"context"
	"time"

	"github.com/jhoicas/cantina-engine/internal/application/ports"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

// Service resuelve el mapeo columna->campo de un archivo subido. El camino
// primario es el oráculo AI; el fallback heurístico es determinista y total,
// así que el throughput nunca queda supeditado a la disponibilidad del
// servicio externo.
type Service struct {
	llm     ports.LLMService
	log     *logger.Logger
	timeout time.Duration
	// sem acota las llamadas concurrentes al endpoint AI (recurso compartido
	// con rate limit).
	sem chan struct{}
}

// NewService construye el servicio. llm puede ser nil: todo cae a la heurística.
func NewService(llm ports.LLMService, log *logger.Logger, timeout time.Duration, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Service{
		llm:     llm,
		log:     log,
		timeout: timeout,
		sem:     make(chan struct{}, maxConcurrent),
	}
}

// Resolve devuelve el FieldMapping para la cabecera dada. Nunca falla: si el
// oráculo AI no responde a tiempo, responde mal orientado o referencia
// columnas inexistentes, se usa la heurística.
func (s *Service) Resolve(ctx context.Context, headers []string, sampleRows []map[string]string) FieldMapping {
	if s.llm == nil {
		return HeuristicMapping(headers)
	}

	aiMapping, ok := s.resolveWithAI(ctx, headers, sampleRows)
	if !ok {
		s.log.Warn().Strs("headers", headers).Msg("mapeo AI descartado, usando heurística")
		return HeuristicMapping(headers)
	}
	return aiMapping
}

func (s *Service) resolveWithAI(ctx context.Context, headers []string, sampleRows []map[string]string) (FieldMapping, bool) {
	// Backpressure: espera un hueco o aborta con el contexto.
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llm.SuggestColumnMapping(ctx, headers, sampleRows)
	if err != nil {
		s.log.Warn().Err(err).Msg("oráculo de mapeo falló")
		return nil, false
	}

	m := make(FieldMapping, len(AllFields))
	for _, field := range AllFields {
		m[field] = raw[string(field)]
	}

	// Guardia de orientación: cada columna mapeada debe existir en la cabecera.
	// Una respuesta invertida (columna -> campo) referencia nombres de campo en
	// lugar de columnas y pierde aquí todas sus entradas.
	valid := m.Validate(headers)
	if valid == 0 {
		return nil, false
	}
	// Sin columna para el nombre el lote entero saldría degradado: en ese caso
	// la heurística es mejor apuesta que un mapeo AI parcial.
	if m.Column(FieldName) == "" {
		return nil, false
	}
	return m, true
}
