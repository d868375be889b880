package usecase

import (
	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/pkg/idnumber"
)

// DescribeIdNumber decodifica un número de identidad nacional. Nunca falla: un número
// inválido se informa con Valid=false y sexo "unknown".
func DescribeIdNumber(number string) dto.IdNumberResponse {
	out := dto.IdNumberResponse{
		Number:  number,
		Valid:   idnumber.IsValid(number),
		Sex:     idnumber.SexOf(number).String(),
		Female:  idnumber.IsFemale(number),
		Male:    idnumber.IsMale(number),
		Citizen: idnumber.IsCitizen(number),
	}
	if dob, ok := idnumber.DateOfBirth(number); ok {
		s := dob.Format(dateLayout)
		out.DateOfBirth = &s
	}
	return out
}
