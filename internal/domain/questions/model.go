package questions

// Category es la categoría de sospecha que puntúa el evaluador.
type Category string

const (
	CategoryFLUTD Category = "FLUTD"
	CategoryCKD   Category = "CKD"
	CategoryGI    Category = "GI"
	CategoryPAIN  Category = "PAIN"
)

// KoreanLabel devuelve la etiqueta de categoría que ve el usuario.
func (c Category) KoreanLabel() string {
	switch c {
	case CategoryFLUTD:
		return "비뇨기"
	case CategoryCKD:
		return "신장"
	case CategoryGI:
		return "소화기"
	case CategoryPAIN:
		return "관절·통증"
	default:
		return string(c)
	}
}

// Option es un par label/value de una pregunta.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question es un registro estático autorado; inmutable en runtime.
// Los ids siguen el esquema fijo del banco (q1_urinary_male, fu_flutd_1, ...).
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options"`
	Category    Category `json:"category,omitempty"`
}
