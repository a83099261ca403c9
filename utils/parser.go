package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChatMessage is one message reassembled from a WhatsApp .txt export.
type ChatMessage struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
	User string `json:"user"`
	Text string `json:"text"`
	Raw  string `json:"raw"`
}

// Two export header styles exist in the wild:
//   [dd/mm/yy, HH:MM AM] Name: text
//   dd/mm/yy, HH:MM - Name: text
var (
	bracketHeaderRe = regexp.MustCompile(`^\[(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}),\s+(\d{1,2}:\d{2})(?:\s*([APap][Mm]))?\]\s(.+)$`)
	dashHeaderRe    = regexp.MustCompile(`^(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}),?\s+(\d{1,2}:\d{2})(?:\s*([APap][Mm]))?\s-\s(.+)$`)
)

type pendingMessage struct {
	dateStr   string
	timeStr   string
	ampm      string
	user      string
	textLines []string
	rawLines  []string
}

func (p *pendingMessage) flush() ChatMessage {
	date, hhmm := normalizeDateTime(p.dateStr, p.timeStr, p.ampm)
	return ChatMessage{
		Date: date,
		Time: hhmm,
		User: p.user,
		Text: strings.TrimSpace(strings.Join(p.textLines, "\n")),
		Raw:  strings.Join(p.rawLines, "\n"),
	}
}

// ParseWhatsAppExport parses an exported chat (no media) into structured
// messages. Lines that don't start a new message are continuations of the
// previous one; anything before the first header is ignored.
func ParseWhatsAppExport(txt string) []ChatMessage {
	var messages []ChatMessage
	var pending *pendingMessage

	for _, line := range strings.Split(strings.ReplaceAll(txt, "\r\n", "\n"), "\n") {
		dateStr, timeStr, ampm, rest, ok := detectMessageStart(line)
		if ok {
			if pending != nil {
				messages = append(messages, pending.flush())
			}
			user, text := parseUserAndText(rest)
			pending = &pendingMessage{
				dateStr:   dateStr,
				timeStr:   timeStr,
				ampm:      ampm,
				user:      user,
				textLines: []string{text},
				rawLines:  []string{line},
			}
		} else if pending != nil {
			pending.textLines = append(pending.textLines, line)
			pending.rawLines = append(pending.rawLines, line)
		}
	}

	if pending != nil {
		messages = append(messages, pending.flush())
	}
	return messages
}

// IsFoodRelated reports whether a message likely describes food. Media and
// system notices are rejected; otherwise a meal keyword or at least two food
// words (Spanish or English) qualify.
func IsFoodRelated(msg ChatMessage) bool {
	if msg.Text == "" || strings.EqualFold(msg.User, "system") {
		return false
	}
	text := strings.ToLower(msg.Text)

	ignoreTokens := []string{
		"multimedia omitido",
		"omitted",
		"imagen omitida",
		"mensajes y llamadas",
		"changed the subject",
		"cambió el asunto",
		"changed to",
		"se unió usando el enlace",
	}
	for _, t := range ignoreTokens {
		if strings.Contains(text, t) {
			return false
		}
	}

	mealTokens := []string{
		"desayuno", "almuerzo", "comida", "cena", "merienda", "snack",
		"desayuné", "almorcé", "cené", "comí",
		"breakfast", "lunch", "dinner",
	}
	for _, t := range mealTokens {
		if strings.Contains(text, t) {
			return true
		}
	}

	foodWords := []string{
		"ensalada", "pollo", "huevo", "huevos", "carne", "arroz", "pasta",
		"verdura", "verduras", "fruta", "frutas", "sandwich", "sándwich",
		"yogur", "yogurt", "cereal", "tostadas", "avena", "sopa", "pizza",
		"empanada", "tarta", "pescado", "legumbre", "legumbres",
	}
	count := 0
	for _, w := range foodWords {
		if strings.Contains(text, w) {
			count++
		}
	}
	return count >= 2
}

// ExtractFoodMessages parses an export and keeps only food-related messages.
func ExtractFoodMessages(txt string) []ChatMessage {
	var out []ChatMessage
	for _, msg := range ParseWhatsAppExport(txt) {
		if IsFoodRelated(msg) {
			out = append(out, msg)
		}
	}
	return out
}

func detectMessageStart(line string) (dateStr, timeStr, ampm, rest string, ok bool) {
	if m := bracketHeaderRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], m[3], m[4], true
	}
	if m := dashHeaderRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], m[3], m[4], true
	}
	return "", "", "", "", false
}

func parseUserAndText(rest string) (user, text string) {
	// After the header we usually have "Name: message"; system notices
	// (subject changes etc.) carry no colon.
	if idx := strings.Index(rest, ": "); idx != -1 {
		user = strings.TrimSpace(rest[:idx])
		if user == "" {
			user = "Unknown"
		}
		return user, rest[idx+2:]
	}
	return "System", rest
}

func normalizeDateTime(dateStr, timeStr, ampm string) (date, hhmm string) {
	sep := "/"
	if !strings.Contains(dateStr, "/") {
		sep = "-"
	}
	parts := strings.Split(dateStr, sep)

	// Exports in this region use dd/mm; two-digit years mean 2000+.
	day, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, _ := strconv.Atoi(strings.TrimSpace(parts[2]))
	if year < 100 {
		year += 2000
	}
	date = fmt.Sprintf("%04d-%02d-%02d", year, month, day)

	hm := strings.SplitN(timeStr, ":", 2)
	hour, _ := strconv.Atoi(hm[0])
	minute, _ := strconv.Atoi(hm[1])
	switch strings.ToLower(ampm) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	hhmm = fmt.Sprintf("%02d:%02d", hour, minute)
	return date, hhmm
}
