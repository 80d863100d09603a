package dto

// RegisterRequest crea un usuario nuevo. Solo roles con rango suficiente
// pueden asignar roles altos.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	SchoolID *int   `json:"school_id"`
}

// LoginRequest inicia sesión con email y contraseña.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest renueva el par de tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangeRoleRequest cambia el rol de un usuario.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateRequestRequest es el formulario interno de solicitud de reemplazo.
// Las fechas van en formato "2006-01-02".
type CreateRequestRequest struct {
	SchoolID   int    `json:"school_id" binding:"required"`
	SchoolName string `json:"school_name" binding:"required"`

	NivelEducativo []string            `json:"nivel_educativo" binding:"required"`
	Asignatura     map[string][]string `json:"asignatura"`
	Curso          map[string][]string `json:"curso"`

	FechaInicio           string              `json:"fecha_inicio" binding:"required"`
	FechaFin              string              `json:"fecha_fin" binding:"required"`
	DiasSeleccionados     []string            `json:"dias_seleccionados"`
	HorariosSeleccionados map[string][]string `json:"horarios_seleccionados"`

	Jefatura                     string `json:"jefatura"`
	HorasContrato                int    `json:"horas_contrato"`
	MencionEspecialidadPostitulo string `json:"mencion_especialidad_postitulo"`
	VacanteConfidencial          string `json:"vacante_confidencial"`

	Genero             string `json:"genero"`
	AniosEgreso        int    `json:"anios_egreso"`
	Disponibilidad     string `json:"disponibilidad"`
	CandidatoPreferido string `json:"candidato_preferido"`
	OtrasPreferencias  string `json:"otras_preferencias"`
	Comentarios        string `json:"comentarios"`
}

// UpdateStatusRequest transiciona el estado de una solicitud.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MatchCriteriaRequest busca candidatos con criterios editados a mano, sin
// modificar la solicitud original.
type MatchCriteriaRequest struct {
	Genero         string   `json:"genero"`
	NivelEducativo []string `json:"nivel_educativo"`
	Asignaturas    []string `json:"asignaturas"`
	DiasDeLaSemana []string `json:"dias_de_la_semana"`
	Disponibilidad string   `json:"disponibilidad"`
	MinAniosEgreso int      `json:"min_anios_egreso"`
}

// CandidateStageRequest marca o desmarca una etapa del flujo de candidato.
type CandidateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
	Value bool   `json:"value"`
}

// SendCandidatesRequest envía candidatos de una solicitud por correo.
type SendCandidatesRequest struct {
	RUTs []string `json:"ruts" binding:"required"`
	To   []string `json:"to" binding:"required"`
}

// SchoolRequest crea o edita un colegio.
type SchoolRequest struct {
	Name       string `json:"school_name"`
	RBD        string `json:"rbd"`
	Comuna     string `json:"comuna"`
	Direccion  string `json:"direccion"`
	Telefono   string `json:"telefono"`
	AdminEmail string `json:"admin_email"`
}

// CreateReceiptRequest abre una recepción de servicio.
type CreateReceiptRequest struct {
	ReplacementID int    `json:"replacement_id" binding:"required"`
	SchoolID      int    `json:"school_id" binding:"required"`
	CandidatoRUT  string `json:"candidato_rut" binding:"required"`
}

// EvaluateReceiptRequest cierra una recepción con la evaluación del colegio.
type EvaluateReceiptRequest struct {
	Status      string `json:"status" binding:"required"`
	Rating      int    `json:"rating" binding:"required"`
	Comentarios string `json:"comentarios"`
}
