package metrics

import "fmt"

// Recorder resolve IDs de métrica para nome e tipo e encaminha ao Provider.
type Recorder struct {
	definitions map[string]MetricDefinition
	provider    Provider
}

// NewRecorder cria um Recorder. definitions nil usa DefaultDefinitions.
func NewRecorder(provider Provider, definitions map[string]MetricDefinition) *Recorder {
	if definitions == nil {
		definitions = DefaultDefinitions
	}
	return &Recorder{definitions: definitions, provider: provider}
}

// Record envia um valor para a métrica identificada por id.
func (r *Recorder) Record(id string, value float64, tags ...string) error {
	def, ok := r.definitions[id]
	if !ok {
		return fmt.Errorf("métrica não definida: %s", id)
	}

	switch def.Type {
	case TypeCount:
		return r.provider.Count(def.Name, value, tags)
	case TypeGauge:
		return r.provider.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return r.provider.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}
