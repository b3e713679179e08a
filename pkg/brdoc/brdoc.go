// Package brdoc normaliza y valida documentos brasileños (CEP, CNPJ, CPF, NCM).
package brdoc

import (
	"strings"
)

// OnlyDigits elimina todo carácter que no sea dígito ASCII.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasDigit indica si s contiene al menos un dígito.
func HasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// NormalizeCEP devuelve los 8 dígitos del CEP; ok=false si no son exactamente 8.
func NormalizeCEP(s string) (string, bool) {
	d := OnlyDigits(s)
	return d, len(d) == 8
}

// NormalizeCNPJ devuelve los 14 dígitos del CNPJ; ok=false si no son exactamente 14.
func NormalizeCNPJ(s string) (string, bool) {
	d := OnlyDigits(s)
	return d, len(d) == 14
}

// FormatCEP 01310100 -> 01310-100. Entradas inválidas se devuelven sin cambios.
func FormatCEP(s string) string {
	d, ok := NormalizeCEP(s)
	if !ok {
		return s
	}
	return d[:5] + "-" + d[5:]
}

// FormatCNPJ 11222333000181 -> 11.222.333/0001-81.
func FormatCNPJ(s string) string {
	d, ok := NormalizeCNPJ(s)
	if !ok {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// FormatCPF 52998224725 -> 529.982.247-25.
func FormatCPF(s string) string {
	d := OnlyDigits(s)
	if len(d) != 11 {
		return s
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// FormatDocument aplica FormatCNPJ o FormatCPF según la cantidad de dígitos.
func FormatDocument(s string) string {
	if len(OnlyDigits(s)) == 11 {
		return FormatCPF(s)
	}
	return FormatCNPJ(s)
}

// FormatNCM 85171231 -> 8517.12.31.
func FormatNCM(s string) string {
	d := OnlyDigits(s)
	if len(d) != 8 {
		return s
	}
	return d[:4] + "." + d[4:6] + "." + d[6:]
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidCNPJ verifica los dígitos verificadores del CNPJ (módulo 11).
// Secuencias de un mismo dígito (00000000000000, 11111111111111...) se rechazan.
func ValidCNPJ(s string) bool {
	d, ok := NormalizeCNPJ(s)
	if !ok || allSame(d) {
		return false
	}
	if checkDigit(d[:12], cnpjWeights1) != int(d[12]-'0') {
		return false
	}
	return checkDigit(d[:13], cnpjWeights2) == int(d[13]-'0')
}

// ValidCPF verifica los dígitos verificadores del CPF.
func ValidCPF(s string) bool {
	d := OnlyDigits(s)
	if len(d) != 11 || allSame(d) {
		return false
	}
	for n := 9; n <= 10; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		dv := (sum * 10) % 11
		if dv == 10 {
			dv = 0
		}
		if dv != int(d[n]-'0') {
			return false
		}
	}
	return true
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
