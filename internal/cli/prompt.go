package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// PromptValues holds what the interactive form collects when the tool
// is started without a target URL.
type PromptValues struct {
	URL         string
	Requests    int
	Concurrency int
}

var bannerLines = []string{
	"██╗  ██╗████████╗████████╗██████╗ ██████╗ ██╗      █████╗ ███████╗████████╗",
	"██║  ██║╚══██╔══╝╚══██╔══╝██╔══██╗██╔══██╗██║     ██╔══██╗██╔════╝╚══██╔══╝",
	"███████║   ██║      ██║   ██████╔╝██████╔╝██║     ███████║███████╗   ██║   ",
	"██╔══██║   ██║      ██║   ██╔═══╝ ██╔══██╗██║     ██╔══██║╚════██║   ██║   ",
	"██║  ██║   ██║      ██║   ██║     ██████╔╝███████╗██║  ██║███████║   ██║   ",
	"╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝     ╚═════╝ ╚══════╝╚═╝  ╚═╝╚══════╝   ╚═╝   ",
}

var gradientStops = [][3]float64{
	{79, 70, 229},   // indigo #4F46E5
	{168, 85, 247},  // purple #A855F7
	{236, 72, 153},  // pink #EC4899
	{251, 113, 133}, // rose #FB7185
}

func lerpColor(c1, c2 [3]float64, t float64) [3]float64 {
	return [3]float64{
		c1[0] + (c2[0]-c1[0])*t,
		c1[1] + (c2[1]-c1[1])*t,
		c1[2] + (c2[2]-c1[2])*t,
	}
}

func gradientColor(t float64) [3]float64 {
	if t <= 0 {
		return gradientStops[0]
	}
	if t >= 1 {
		return gradientStops[len(gradientStops)-1]
	}

	segments := float64(len(gradientStops) - 1)
	scaled := t * segments
	idx := int(scaled)
	if idx >= len(gradientStops)-1 {
		idx = len(gradientStops) - 2
	}
	localT := scaled - float64(idx)

	return lerpColor(gradientStops[idx], gradientStops[idx+1], localT)
}

func PrintBanner() {
	fmt.Println()

	height := len(bannerLines)
	width := 0
	for _, line := range bannerLines {
		if w := len([]rune(line)); w > width {
			width = w
		}
	}

	for y, line := range bannerLines {
		var result strings.Builder

		for x, r := range []rune(line) {
			diagonal := (float64(x)/float64(width))*0.5 + (float64(y)/float64(height))*0.5
			color := gradientColor(diagonal)

			style := lipgloss.NewStyle().Foreground(lipgloss.Color(
				fmt.Sprintf("#%02X%02X%02X", int(color[0]), int(color[1]), int(color[2])),
			))
			result.WriteString(style.Render(string(r)))
		}
		fmt.Println(result.String())
	}
	fmt.Println()
}

// PromptRun collects url, request count and concurrency interactively.
// Defaults seed the numeric inputs.
func PromptRun(defaultRequests, defaultConcurrency int) (*PromptValues, error) {
	values := PromptValues{
		Requests:    defaultRequests,
		Concurrency: defaultConcurrency,
	}

	requestsStr := strconv.Itoa(values.Requests)
	concurrencyStr := strconv.Itoa(values.Concurrency)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target URL").
				Placeholder("https://example.com/").
				Validate(validateURL).
				Value(&values.URL),
			huh.NewInput().
				Title("Total requests").
				Validate(validatePositiveInt).
				Value(&requestsStr),
			huh.NewInput().
				Title("Concurrency").
				Validate(validatePositiveInt).
				Value(&concurrencyStr),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithKeyMap(huh.NewDefaultKeyMap())

	if err := form.Run(); err != nil {
		return nil, err
	}

	values.Requests, _ = strconv.Atoi(strings.TrimSpace(requestsStr))
	values.Concurrency, _ = strconv.Atoi(strings.TrimSpace(concurrencyStr))

	return &values, nil
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("url is required")
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("scheme must be http or https")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}
