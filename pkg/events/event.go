package events

const (
	// HashKey é a partition key da tabela
	HashKey = "id"
	// TitleAttr é o atributo alterado por UpdateTitle
	TitleAttr = "title"
)

// Event é o único recurso do serviço.
type Event struct {
	ID    string `json:"id" dynamodbav:"id"`
	Title string `json:"title" dynamodbav:"title"`
}

func NewEvent(id, title string) Event {
	return Event{ID: id, Title: title}
}

// QueryParams são os filtros aceitos na listagem. Title nil lista tudo.
type QueryParams struct {
	Title *string `json:"title,omitempty"`
}

// PutTitleParams é o corpo da alteração de título.
type PutTitleParams struct {
	Title string `json:"title"`
}
