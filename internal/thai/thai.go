// Package thai formats dates and amounts for Thai statutory reports:
// Buddhist-era calendar labels and baht amounts in words.
package thai

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var monthsLong = []string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var monthsShort = []string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// FormatDate renders an ISO date as "2 ตุลาคม พ.ศ. 2568". A date that does
// not parse is returned unchanged, matching how legacy records are shown.
func FormatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		if date == "" {
			return "-"
		}
		return date
	}
	return d.Format("02") + " " + monthsLong[d.Month()-1] + " พ.ศ. " + strconv.Itoa(d.Year()+543)
}

// FormatDateShort renders an ISO date as "2 ต.ค. 2568".
func FormatDateShort(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		if date == "" {
			return "-"
		}
		return date
	}
	return strconv.Itoa(d.Day()) + " " + monthsShort[d.Month()-1] + " " + strconv.Itoa(d.Year()+543)
}

// MonthShort returns the abbreviated Thai month name for a 1-based month.
func MonthShort(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthsShort[month-1]
}

// FormatMoney renders an amount with comma grouping and two decimals.
func FormatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

var digitWords = []string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}
var placeWords = []string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}

// BahtText spells an amount in Thai words for the "จำนวนเงิน (ตัวอักษร)"
// line of the compliance forms.
func BahtText(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "ศูนย์บาทถ้วน"
	}
	s := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	text := spellInteger(intPart)
	if text == "" {
		text = "ศูนย์"
	}
	text += "บาท"
	if fracPart == "00" {
		text += "ถ้วน"
	} else {
		text += spellGroup(fracPart) + "สตางค์"
	}
	if amount.IsNegative() {
		return "ลบ" + text
	}
	return text
}

// spellInteger handles arbitrary magnitudes by recursing per million.
func spellInteger(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return ""
	}
	if len(digits) <= 6 {
		return spellGroup(digits)
	}
	head := digits[:len(digits)-6]
	tail := digits[len(digits)-6:]
	return spellInteger(head) + "ล้าน" + spellGroup(tail)
}

func spellGroup(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	n := len(digits)
	var b strings.Builder
	for i := 0; i < n; i++ {
		digit := int(digits[i] - '0')
		pos := n - 1 - i
		if digit == 0 {
			continue
		}
		switch {
		case pos == 0 && digit == 1 && n > 1:
			b.WriteString("เอ็ด")
		case pos == 1 && digit == 2:
			b.WriteString("ยี่")
		case pos == 1 && digit == 1:
			// สิบ alone, no leading หนึ่ง
		default:
			b.WriteString(digitWords[digit])
		}
		b.WriteString(placeWords[pos])
	}
	return b.String()
}
