package model

// SessionActivity 虚拟课堂活动提案，原始活动文本来自大纲会话列表
// swagger:model SessionActivity
type SessionActivity struct {
	BaseModel
	CourseID       uint           `gorm:"uniqueIndex:idx_activity_course_session;not null" json:"curso_id"`
	SessionNumber  int            `gorm:"uniqueIndex:idx_activity_course_session;not null" json:"numero_sesion"`
	SourceActivity string         `gorm:"type:text" json:"actividad_original"`
	Proposal       string         `gorm:"type:longtext" json:"propuesta"`
	Status         PipelineStatus `gorm:"size:20;default:'pending'" json:"estado"`
}

func (SessionActivity) TableName() string {
	return "actividad_sesiones"
}
