package sequence

// Kind identifica a numeração de um tipo de registro
type Kind string

const (
	FreightNote Kind = "freight_note" // Numeração das notas de frete
	Ticket      Kind = "ticket"       // Numeração dos bilhetes
)
