package sheet

import (
	"reflect"
	"testing"

	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

func TestApplicantRoundTripPreservesAsignaturaCompuesta(t *testing.T) {
	celular := "+56 9 8765 4321"
	egreso := 4
	in := &models.Applicant{
		RUT:                      "18765432-1",
		Nombre:                   "Carla Mora",
		Email:                    "carla.mora@gmail.com",
		Celular:                  &celular,
		AniosEgreso:              &egreso,
		NivelEducativo:           []string{"Media"},
		Asignaturas:              []string{catalog.AsignaturaCompuesta, "Matemática"},
		AsignaturasNoReconocidas: []string{"Astronomía"},
		DiasDisponibles:          []string{"Lunes", "Martes"},
		Disponibilidad:           "Completa",
		Genero:                   "Femenino",
		Validado:                 true,
	}

	got := DeserializeApplicant(SerializeApplicant(in))

	// La asignatura compuesta tiene comas internas: el viaje por celda de
	// texto no debe fracturarla en tokens sueltos.
	if !reflect.DeepEqual(got.Asignaturas, in.Asignaturas) {
		t.Errorf("asignaturas = %v, se esperaba %v", got.Asignaturas, in.Asignaturas)
	}
	if !reflect.DeepEqual(got.AsignaturasNoReconocidas, in.AsignaturasNoReconocidas) {
		t.Errorf("no reconocidas = %v, se esperaba %v", got.AsignaturasNoReconocidas, in.AsignaturasNoReconocidas)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("postulante = %+v, se esperaba %+v", got, in)
	}
}

func TestParseSubjectList(t *testing.T) {
	got := ParseSubjectList("Historia, geografía y Ciencias Sociales, Matemática, Física")
	want := []string{catalog.AsignaturaCompuesta, "Matemática", "Física"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("asignaturas = %v, se esperaba %v", got, want)
	}

	if got := ParseSubjectList(""); got != nil {
		t.Errorf("celda vacía = %v, se esperaba nil", got)
	}
}
