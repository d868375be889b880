// Package idnumber valida y decodifica el número de identidad nacional de 13 dígitos.
//
// Formato: YYMMDD (fecha de nacimiento) + 1 dígito de sexo + 3 de secuencia +
// 1 de ciudadanía + 1 de relleno + 1 dígito de control (Luhn).
//
// Todas las funciones son totales: una entrada malformada nunca provoca panic ni error,
// simplemente se evalúa como inválida (false / ausente).
package idnumber

import "time"

// Length longitud fija del número.
const Length = 13

// centuryCutoff umbral fijo del año de dos dígitos: < 16 → 2000+, resto → 1900+.
const centuryCutoff = 16

const (
	sexIndex         = 6
	citizenshipIndex = 10
)

// Sex resultado tri-estado del dígito de sexo.
type Sex int

const (
	SexUnknown Sex = iota // número inválido
	SexFemale             // dígito 0-4
	SexMale               // dígito 5-9
)

// String devuelve la representación usada en las respuestas JSON.
func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "female"
	case SexMale:
		return "male"
	default:
		return "unknown"
	}
}

// IsValid informa si el número cumple longitud, dígitos, dígito de control y fecha real.
func IsValid(s string) bool {
	_, ok := decode(s)
	return ok
}

// DateOfBirth devuelve la fecha de nacimiento codificada; ok=false si el número es inválido.
func DateOfBirth(s string) (time.Time, bool) {
	return decode(s)
}

// IsFemale informa si el dígito de sexo está entre 0 y 4. Un número inválido no es ni femenino ni masculino.
func IsFemale(s string) bool {
	return SexOf(s) == SexFemale
}

// IsMale informa si el dígito de sexo está entre 5 y 9. Un número inválido no es ni femenino ni masculino.
func IsMale(s string) bool {
	return SexOf(s) == SexMale
}

// SexOf devuelve el sexo codificado, o SexUnknown si el número es inválido.
func SexOf(s string) Sex {
	if !IsValid(s) {
		return SexUnknown
	}
	if s[sexIndex]-'0' <= 4 {
		return SexFemale
	}
	return SexMale
}

// IsCitizen informa si el dígito de ciudadanía es '0'; false si el número es inválido.
func IsCitizen(s string) bool {
	return IsValid(s) && s[citizenshipIndex] == '0'
}

// CheckDigit calcula el dígito de control para los 12 primeros dígitos.
// ok=false si first12 no tiene exactamente 12 dígitos numéricos.
func CheckDigit(first12 string) (byte, bool) {
	d, ok := digits(first12, Length-1)
	if !ok {
		return 0, false
	}
	// El dígito de control ocupa la posición 1 (impar); el resto se desplaza una posición.
	sum := weightedSum(d, 2)
	return byte('0' + (10-sum%10)%10), true
}

func decode(s string) (time.Time, bool) {
	d, ok := digits(s, Length)
	if !ok {
		return time.Time{}, false
	}
	if weightedSum(d, 1)%10 != 0 {
		return time.Time{}, false
	}
	return birthDate(d)
}

func digits(s string, n int) ([]int, bool) {
	if len(s) != n {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		out[i] = int(c - '0')
	}
	return out, true
}

// weightedSum recorre los dígitos desde la derecha; firstPos es la posición (1-indexada)
// del último dígito. Las posiciones pares se duplican y, si el resultado es >= 10, se resta 9.
func weightedSum(d []int, firstPos int) int {
	sum := 0
	pos := firstPos
	for i := len(d) - 1; i >= 0; i-- {
		v := d[i]
		if pos%2 == 0 {
			v *= 2
			if v >= 10 {
				v -= 9
			}
		}
		sum += v
		pos++
	}
	return sum
}

func birthDate(d []int) (time.Time, bool) {
	yy := d[0]*10 + d[1]
	month := d[2]*10 + d[3]
	day := d[4]*10 + d[5]
	year := 1900 + yy
	if yy < centuryCutoff {
		year = 2000 + yy
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza fechas imposibles (31 de febrero → 3 de marzo).
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
