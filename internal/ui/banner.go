package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const bannerText = `
 _                      ____        _            _
| |    __ _ _ __   __ _/ ___|  __ _| | __ _ _ __(_)_   _
| |   / _' | '_ \ / _' \___ \ / _' | |/ _' | '__| | | | |
| |__| (_| | | | | (_| |___) | (_| | | (_| | |  | | |_| |
|_____\__,_|_| |_|\__, |____/ \__,_|_|\__,_|_|  |_|\__, |
                  |___/                            |___/
 @fr4nk3nst1ner
`

// ColorizeText applies a random colour gradient to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var colored strings.Builder
	for i, ch := range chars {
		colored.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return colored.String()
}

// PrintBanner displays the application banner
func PrintBanner(w io.Writer, silence bool) {
	if !silence {
		fmt.Fprintln(w, ColorizeText(bannerText))
	}
}

// ColorizeSalary colours a monthly rouble salary by bracket
func ColorizeSalary(salary int) string {
	formatted := utils.FormatSalary(salary)

	switch {
	case salary >= 300000:
		return pterm.Green(formatted)
	case salary >= 200000:
		return pterm.LightGreen(formatted)
	case salary >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
