package model

import (
	"encoding/json"
	"fmt"
)

// SlideType 幻灯片仅允许8种固定类型
type SlideType string

const (
	SlidePortada     SlideType = "portada"
	SlideIndice      SlideType = "indice"
	SlideSubtemas    SlideType = "subtemas"
	SlideTextoImagen SlideType = "texto_imagen"
	SlideDosColumnas SlideType = "dos_columnas"
	SlideSoloImagen  SlideType = "solo_imagen"
	SlideSoloTexto   SlideType = "solo_texto"
	SlideConclusion  SlideType = "conclusion"
)

// AllSlideTypes 提示词与校验共用
var AllSlideTypes = []SlideType{
	SlidePortada, SlideIndice, SlideSubtemas, SlideTextoImagen,
	SlideDosColumnas, SlideSoloImagen, SlideSoloTexto, SlideConclusion,
}

// SlideContent 按tipo区分的内容变体，在反序列化边界做校验：
// 未知tipo直接拒绝，不做盲目渲染
type SlideContent interface {
	slideContent()
}

type CoverContent struct {
	TituloPrincipal string `json:"titulo_principal"`
	Subtitulo       string `json:"subtitulo,omitempty"`
	Curso           string `json:"curso,omitempty"`
	Sesion          string `json:"sesion,omitempty"`
	Codigo          string `json:"codigo,omitempty"`
}

// ListContent indice 和 subtemas 共用：一组条目
type ListContent struct {
	Items []string `json:"items"`
}

type TextImageContent struct {
	Texto            string `json:"texto"`
	SugerenciaImagen string `json:"sugerencia_imagen"`
}

type TwoColumnContent struct {
	ColumnaIzquierda string `json:"columna_izquierda"`
	ColumnaDerecha   string `json:"columna_derecha"`
}

type ImageContent struct {
	SugerenciaImagen string `json:"sugerencia_imagen"`
	Descripcion      string `json:"descripcion,omitempty"`
}

type TextContent struct {
	Texto string `json:"texto"`
}

type ConclusionContent struct {
	Puntos []string `json:"puntos,omitempty"`
	Cierre string   `json:"cierre,omitempty"`
}

func (CoverContent) slideContent()      {}
func (ListContent) slideContent()       {}
func (TextImageContent) slideContent()  {}
func (TwoColumnContent) slideContent()  {}
func (ImageContent) slideContent()      {}
func (TextContent) slideContent()       {}
func (ConclusionContent) slideContent() {}

// Slide 单张幻灯片，contenido的形状由tipo决定
type Slide struct {
	Numero    int          `json:"numero"`
	Tipo      SlideType    `json:"tipo"`
	Titulo    string       `json:"titulo"`
	Contenido SlideContent `json:"contenido"`
}

type slideEnvelope struct {
	Numero    int             `json:"numero"`
	Tipo      SlideType       `json:"tipo"`
	Titulo    string          `json:"titulo"`
	Contenido json.RawMessage `json:"contenido"`
}

func decodeContent(tipo SlideType, raw json.RawMessage) (SlideContent, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch tipo {
	case SlidePortada:
		var c CoverContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SlideIndice, SlideSubtemas:
		var c ListContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SlideTextoImagen:
		var c TextImageContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SlideDosColumnas:
		var c TwoColumnContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SlideSoloImagen:
		var c ImageContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SlideSoloTexto:
		var c TextContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SlideConclusion:
		var c ConclusionContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("tipo de slide desconocido: %q", tipo)
}

func (s *Slide) UnmarshalJSON(data []byte) error {
	var env slideEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	content, err := decodeContent(env.Tipo, env.Contenido)
	if err != nil {
		return fmt.Errorf("slide %d: %w", env.Numero, err)
	}
	s.Numero = env.Numero
	s.Tipo = env.Tipo
	s.Titulo = env.Titulo
	s.Contenido = content
	return nil
}

// DeckMeta 持久化与线上格式固定的元数据头
type DeckMeta struct {
	Curso       string `json:"curso"`
	Codigo      string `json:"codigo"`
	Sesion      int    `json:"sesion"`
	Tema        string `json:"tema"`
	TotalSlides int    `json:"total_slides"`
}

// SlideDeck PPT结构的完整JSON文档
type SlideDeck struct {
	Meta   DeckMeta `json:"meta"`
	Slides []Slide  `json:"slides"`
}

// DistinctTypes 返回出现过的slide类型（按首次出现排序）
func (d *SlideDeck) DistinctTypes() []SlideType {
	seen := make(map[SlideType]bool, len(AllSlideTypes))
	var out []SlideType
	for _, s := range d.Slides {
		if !seen[s.Tipo] {
			seen[s.Tipo] = true
			out = append(out, s.Tipo)
		}
	}
	return out
}

// SlideStructure 每个(课程,会话)一份结构，保存时重算派生元数据
// swagger:model SlideStructure
type SlideStructure struct {
	BaseModel
	CourseID      uint           `gorm:"uniqueIndex:idx_structure_course_session;not null" json:"curso_id"`
	SessionNumber int            `gorm:"uniqueIndex:idx_structure_course_session;not null" json:"numero_sesion"`
	Topic         string         `gorm:"size:255" json:"tema_sesion"`
	Structure     SlideDeck      `gorm:"serializer:json;type:json" json:"estructura"`
	SlideCount    int            `json:"total_slides"`
	TypesUsed     []SlideType    `gorm:"serializer:json;type:json" json:"tipos_usados"`
	Status        PipelineStatus `gorm:"size:20;default:'completed'" json:"estado"`
	CreatedBy     uint           `gorm:"not null" json:"creado_por"`
}

func (SlideStructure) TableName() string {
	return "estructura_ppts"
}
