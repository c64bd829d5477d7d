package util

import "errors"

// 校验类错误：在任何网络/存储调用之前拒绝
var (
	ErrCodigoFormato    = errors.New("el código debe tener exactamente 5 dígitos")
	ErrCodigoDuplicado  = errors.New("este código ya existe")
	ErrVersionInvalida  = errors.New("la versión debe ser un número entre 1 y 10")
	ErrCuentaInvalida   = errors.New("cuenta inválida")
	ErrFechaInvalida    = errors.New("fecha de entrega inválida")
	ErrCampoObligatorio = errors.New("faltan campos obligatorios")
	ErrDNIInvalido      = errors.New("el DNI debe tener exactamente 8 dígitos")
	ErrEstadoInvalido   = errors.New("estado de revisión inválido")
	ErrSlotInvalido     = errors.New("slot de documento inválido, debe ser 1 o 2")
	ErrBackendInvalido  = errors.New("backend de investigación desconocido")
)

// 流程前置条件错误
var (
	ErrCursoNotFound        = errors.New("curso no encontrado")
	ErrRevisionNotFound     = errors.New("el curso no tiene revisión de sílabo")
	ErrReviewNotApproved    = errors.New("la revisión del sílabo no está aprobada")
	ErrSessionNotFound      = errors.New("sesión no encontrada en la lista del sílabo")
	ErrMissingDocuments     = errors.New("se requieren ambos documentos de referencia")
	ErrResearchNotFound     = errors.New("la sesión no tiene investigación registrada")
	ErrComparacionNotFound  = errors.New("la sesión no tiene comparación registrada")
	ErrAsignacionNotFound   = errors.New("el curso no tiene revisor asignado")
	ErrResearchNotCompleted = errors.New("la investigación de la sesión no está completada")
	ErrNoActivities         = errors.New("la sesión no tiene actividades de aprendizaje")
	ErrGenerationInProgress = errors.New("ya hay una generación en curso para esta sesión")
)

// 数据形状错误：保留原始输出，作为可恢复警告上浮
var (
	ErrEmptyDocument        = errors.New("el documento extraído está vacío")
	ErrMalformedSections    = errors.New("la respuesta del modelo no respeta los delimitadores de sección")
	ErrMalformedSessionList = errors.New("la respuesta del modelo no es una lista de sesiones válida")
	ErrInvalidStructureJSON = errors.New("JSON inválido generado")
)

// 上游依赖错误：按状态码映射为用户可见消息
var (
	ErrAIUnauthorized  = errors.New("API Key inválida. Verifica la configuración del proveedor.")
	ErrAIRateLimited   = errors.New("límite de rate excedido. Intenta nuevamente en unos minutos.")
	ErrAITimeout       = errors.New("el análisis tardó demasiado. Intenta nuevamente con un texto más corto.")
	ErrAIEmptyResponse = errors.New("el modelo no devolvió ninguna respuesta")
	ErrAIKeyNotSet     = errors.New("API Key no configurada en el servidor")
)

// 认证类错误
var (
	ErrUnauthenticated    = errors.New("se requiere una sesión activa")
	ErrEmailRegistered    = errors.New("el correo ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
