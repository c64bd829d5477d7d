package model

type AccountType string

const (
	AccountEjecutiva AccountType = "ejecutiva"
	AccountPregrado  AccountType = "pregrado"
	AccountHarson    AccountType = "Harson"
	AccountEscuela   AccountType = "escuela"
)

// ValidAccount 账户类别是固定的4个枚举值
func ValidAccount(a AccountType) bool {
	switch a {
	case AccountEjecutiva, AccountPregrado, AccountHarson, AccountEscuela:
		return true
	}
	return false
}

// Course 课程记录，上传大纲文件时创建，除删除外不再修改
// swagger:model Course
type Course struct {
	BaseModel
	Name     string      `gorm:"size:255;not null" json:"nombre_curso"`
	Version  int         `gorm:"not null" json:"version"`
	DueDate  string      `gorm:"size:10;not null" json:"fecha_entrega"`
	FileKey  string      `gorm:"size:512;not null" json:"archivo_url"`
	FileName string      `gorm:"size:255;not null" json:"archivo_nombre"`
	Account  AccountType `gorm:"size:20;not null" json:"cuenta"`
	Code     string      `gorm:"size:5;uniqueIndex;not null" json:"codigo"`
}

func (Course) TableName() string {
	return "cursos"
}
