package model

type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// SyllabusSession 大纲结构化解析出的单次课（由批判提示的第二路提示抽取）
type SyllabusSession struct {
	Number     int      `json:"numero_sesion"`
	Topic      string   `json:"tema_principal"`
	Subtopics  []string `json:"subtemas"`
	Activities string   `json:"actividades"`
	Resources  string   `json:"recursos"`
	Evaluation string   `json:"evaluacion"`
	Duration   string   `json:"duracion"`
}

// CritiqueSections 批判固定的5个板块，由分隔符协议解析而来
type CritiqueSections struct {
	GeneralObjective   string `json:"objetivo_general"`
	SpecificObjectives string `json:"objetivos_especificos"`
	Contents           string `json:"contenidos"`
	Resources          string `json:"recursos"`
	Bibliography       string `json:"bibliografia"`
}

// SyllabusReview 每个课程一行，重新评审时整行覆盖（latest wins）
// swagger:model SyllabusReview
type SyllabusReview struct {
	BaseModel
	CourseID    uint              `gorm:"uniqueIndex;not null" json:"curso_id"`
	Status      ReviewStatus      `gorm:"size:20;not null" json:"estado"`
	Critique    string            `gorm:"type:longtext" json:"critica"`
	Sections    CritiqueSections  `gorm:"serializer:json" json:"secciones"`
	SessionList []SyllabusSession `gorm:"serializer:json;type:json" json:"lista_sesiones"`
	Reviewer    string            `gorm:"size:100" json:"revisor"`
	Remarks     string            `gorm:"type:text" json:"observaciones"`
}

func (SyllabusReview) TableName() string {
	return "revision_silabos"
}

// FindSession 在结构化列表里按编号找会话
func (r *SyllabusReview) FindSession(number int) *SyllabusSession {
	for i := range r.SessionList {
		if r.SessionList[i].Number == number {
			return &r.SessionList[i]
		}
	}
	return nil
}
