package model

// PipelineStatus 各下游阶段共用的状态机
type PipelineStatus string

const (
	StatusPending    PipelineStatus = "pending"
	StatusProcessing PipelineStatus = "processing"
	StatusCompleted  PipelineStatus = "completed"
	StatusError      PipelineStatus = "error"
)

// ResearchBackend 每次调用时选择，不走配置
type ResearchBackend string

const (
	BackendDeepSeek   ResearchBackend = "deepseek"
	BackendPerplexity ResearchBackend = "perplexity"
)

func ValidBackend(b ResearchBackend) bool {
	return b == BackendDeepSeek || b == BackendPerplexity
}

// SessionResearch 每个(课程,会话)一行，重新生成时覆盖
// swagger:model SessionResearch
type SessionResearch struct {
	BaseModel
	CourseID      uint            `gorm:"uniqueIndex:idx_research_course_session;not null" json:"curso_id"`
	SessionNumber int             `gorm:"uniqueIndex:idx_research_course_session;not null" json:"numero_sesion"`
	Topic         string          `gorm:"size:255" json:"tema_sesion"`
	Content       string          `gorm:"type:longtext" json:"contenido_investigacion"`
	Backend       ResearchBackend `gorm:"size:20" json:"backend"`
	Status        PipelineStatus  `gorm:"size:20;default:'pending'" json:"estado"`
}

func (SessionResearch) TableName() string {
	return "investigacion_sesiones"
}
