package weather

import "strings"

// stateNames maps Brazilian UF codes to the names the geocoder reports in admin1
var stateNames = map[string]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

// matchesState reports whether a geocoder admin1 value designates the given state code or name
func matchesState(admin1, state string) bool {
	admin1 = strings.TrimSpace(admin1)
	state = strings.TrimSpace(state)
	if admin1 == "" || state == "" {
		return false
	}
	if name, ok := stateNames[strings.ToUpper(state)]; ok && strings.EqualFold(admin1, name) {
		return true
	}
	return strings.EqualFold(admin1, state)
}
