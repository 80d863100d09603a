package sheet

import "github.com/vmlandae/reemplazos-backend/internal/models"

// SerializeSchool aplana un colegio a fila de la tabla de colegios.
func SerializeSchool(s *models.School) map[string]string {
	return map[string]string{
		"school_id":   SerializeValue(ShapeInt, s.ID),
		"school_name": s.Name,
		"rbd":         s.RBD,
		"comuna":      s.Comuna,
		"direccion":   s.Direccion,
		"telefono":    s.Telefono,
		"admin_email": s.AdminEmail,
		"version":     SerializeValue(ShapeInt, s.Version),
		"created_at":  SerializeValue(ShapeTimestamp, s.CreatedAt),
		"updated_at":  SerializeValue(ShapeTimestamp, s.UpdatedAt),
	}
}

// DeserializeSchool reconstruye un colegio desde una fila.
func DeserializeSchool(row map[string]string) *models.School {
	return &models.School{
		ID:         ParseInt(row["school_id"]),
		Name:       row["school_name"],
		RBD:        row["rbd"],
		Comuna:     row["comuna"],
		Direccion:  row["direccion"],
		Telefono:   row["telefono"],
		AdminEmail: row["admin_email"],
		Version:    ParseInt(row["version"]),
		CreatedAt:  ParseTimestamp(row["created_at"]),
		UpdatedAt:  ParseTimestamp(row["updated_at"]),
	}
}

// SerializeReceipt aplana una recepción de servicio.
func SerializeReceipt(r *models.Receipt) map[string]string {
	return map[string]string{
		"reception_id":   SerializeValue(ShapeInt, r.ReceptionID),
		"replacement_id": SerializeValue(ShapeInt, r.ReplacementID),
		"school_id":      SerializeValue(ShapeInt, r.SchoolID),
		"candidato_rut":  r.CandidatoRUT,
		"status":         r.Status,
		"rating":         SerializeValue(ShapeInt, r.Rating),
		"comentarios":    r.Comentarios,
		"created_by":     r.CreatedBy,
		"created_at":     SerializeValue(ShapeTimestamp, r.CreatedAt),
		"updated_at":     SerializeValue(ShapeTimestamp, r.UpdatedAt),
	}
}

// DeserializeReceipt reconstruye una recepción desde una fila.
func DeserializeReceipt(row map[string]string) *models.Receipt {
	r := &models.Receipt{
		ReceptionID:   ParseInt(row["reception_id"]),
		ReplacementID: ParseInt(row["replacement_id"]),
		SchoolID:      ParseInt(row["school_id"]),
		CandidatoRUT:  row["candidato_rut"],
		Status:        row["status"],
		Rating:        ParseInt(row["rating"]),
		Comentarios:   row["comentarios"],
		CreatedBy:     row["created_by"],
		CreatedAt:     ParseTimestamp(row["created_at"]),
	}
	if t := ParseTimestamp(row["updated_at"]); !t.IsZero() {
		r.UpdatedAt = &t
	}
	return r
}

// SerializeSentCV aplana un registro de CV enviado.
func SerializeSentCV(s *models.SentCV) map[string]string {
	return map[string]string{
		"replacement_id": SerializeValue(ShapeInt, s.ReplacementID),
		"email":          s.Email,
		"sent_at":        SerializeValue(ShapeTimestamp, s.SentAt),
	}
}

// DeserializeSentCV reconstruye un registro de CV enviado.
func DeserializeSentCV(row map[string]string) *models.SentCV {
	return &models.SentCV{
		ReplacementID: ParseInt(row["replacement_id"]),
		Email:         row["email"],
		SentAt:        ParseTimestamp(row["sent_at"]),
	}
}
