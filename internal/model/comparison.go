package model

// SessionComparison 对照阶段：两份参考文档齐了才能跑比较
// swagger:model SessionComparison
type SessionComparison struct {
	BaseModel
	CourseID      uint           `gorm:"uniqueIndex:idx_comparison_course_session;not null" json:"curso_id"`
	SessionNumber int            `gorm:"uniqueIndex:idx_comparison_course_session;not null" json:"numero_sesion"`
	ResearchID    uint           `json:"investigacion_id"`
	DocumentKey1  string         `gorm:"size:512" json:"documento_url_1"`
	DocumentName1 string         `gorm:"size:255" json:"documento_nombre_1"`
	DocumentKey2  string         `gorm:"size:512" json:"documento_url_2"`
	DocumentName2 string         `gorm:"size:255" json:"documento_nombre_2"`
	Verdict       string         `gorm:"type:longtext" json:"veredicto"`
	Status        PipelineStatus `gorm:"size:20;default:'pending'" json:"estado"`
}

func (SessionComparison) TableName() string {
	return "comparacion_sesiones"
}

// HasBothDocuments 完成比较的前置条件
func (c *SessionComparison) HasBothDocuments() bool {
	return c.DocumentKey1 != "" && c.DocumentKey2 != ""
}
