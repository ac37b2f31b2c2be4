package vessel

// Name representa o nome de uma embarcação da frota
type Name string

const (
	AlmiranteOliveiraV   Name = "B/M Almirante Oliveira V"   // Barco-motor
	ComandanteOliveiraII Name = "N/M Comandante Oliveira II" // Navio-motor

	// NotInformed substitui o nome ausente nos agrupamentos por embarcação
	NotInformed Name = "Não Informado"
)

// Fleet lista as embarcações conhecidas
var Fleet = []Name{AlmiranteOliveiraV, ComandanteOliveiraII}

// IsValid verifica se o nome pertence à frota
func (n Name) IsValid() bool {
	for _, v := range Fleet {
		if v == n {
			return true
		}
	}
	return false
}

// OrPlaceholder retorna o nome ou o marcador de não informado
func (n Name) OrPlaceholder() Name {
	if n == "" {
		return NotInformed
	}
	return n
}
