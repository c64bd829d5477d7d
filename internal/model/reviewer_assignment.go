package model

type AssignmentStatus string

const (
	AssignmentEnProceso      AssignmentStatus = "EN_PROCESO"
	AssignmentAprobado       AssignmentStatus = "APROBADO"
	AssignmentAprobadoConObs AssignmentStatus = "APROBADO_CON_OBSERVACIONES"
	AssignmentRechazado      AssignmentStatus = "RECHAZADO"
)

func ValidAssignmentStatus(s AssignmentStatus) bool {
	switch s {
	case AssignmentEnProceso, AssignmentAprobado, AssignmentAprobadoConObs, AssignmentRechazado:
		return true
	}
	return false
}

// ReviewerAssignment 评审人登记表，每个课程一条，可反复覆盖
// swagger:model ReviewerAssignment
type ReviewerAssignment struct {
	BaseModel
	CourseID     uint             `gorm:"uniqueIndex;not null" json:"curso_id"`
	ReviewerName string           `gorm:"size:100;not null" json:"nombre_revisor"`
	DNI          string           `gorm:"size:8" json:"dni"`
	Phone        string           `gorm:"size:30" json:"telefono"`
	Email        string           `gorm:"size:100" json:"correo"`
	Deadline     string           `gorm:"size:10" json:"fecha_limite"`
	Status       AssignmentStatus `gorm:"size:30;default:'EN_PROCESO'" json:"estado_revision"`
	Comments     string           `gorm:"type:text" json:"comentarios"`
}

func (ReviewerAssignment) TableName() string {
	return "asignacion_revisores"
}
