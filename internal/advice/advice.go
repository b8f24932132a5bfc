package advice

import (
	"context"
	"errors"
	"fmt"

	"github.com/weatherpick/weatherpick/internal/cache"
	"github.com/weatherpick/weatherpick/internal/weather"
)

// ErrMalformedResponse is returned when the text generator's response does
// not carry the expected nested output text. No fallback text is
// synthesized.
var ErrMalformedResponse = errors.New("text generation response missing output text")

// GenerationResponse mirrors the text generator's nested output structure:
// output -> message -> content -> text.
type GenerationResponse struct {
	Output []GenerationMessage `json:"output"`
}

type GenerationMessage struct {
	Content []GenerationContent `json:"content"`
}

type GenerationContent struct {
	Text string `json:"text"`
}

// TextGenerator abstracts the external text-generation service. Sampling
// is deterministic and output length bounded on the client side.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (GenerationResponse, error)
}

const systemPrompt = `You are an engine that recommends an outfit and items to bring based on the provided weather data.
No explanations or asides.

Output exactly two lines in this format:

- Outfit: (up to 4 items)
- Bring: (up to 4 items)

Example output:
- Outfit: padded coat, thermal layer, scarf
- Bring: umbrella`

// Generator turns a weather snapshot into outfit advice, consulting its
// cache before paying for a generation call.
type Generator struct {
	textgen TextGenerator
	cache   *cache.Cache[string]
}

// NewGenerator creates a Generator around the given text generator and
// advice cache.
func NewGenerator(textgen TextGenerator, c *cache.Cache[string]) *Generator {
	return &Generator{
		textgen: textgen,
		cache:   c,
	}
}

// Recommend returns advice text for the snapshot. Snapshots that bucket to
// the same key reuse one cached generation.
func (g *Generator) Recommend(ctx context.Context, snapshot weather.Snapshot) (string, error) {
	key := Key(snapshot)
	if text, ok := g.cache.Get(key); ok {
		return text, nil
	}

	resp, err := g.textgen.Generate(ctx, systemPrompt, userPrompt(snapshot))
	if err != nil {
		return "", err
	}

	text, err := outputText(resp)
	if err != nil {
		return "", err
	}

	g.cache.Put(key, text)
	return text, nil
}

func userPrompt(s weather.Snapshot) string {
	return fmt.Sprintf(`- Temperature (C): %v
- 1h precipitation (mm): %v
- Humidity (%%): %d
- Wind speed (m/s): %v
- Precipitation type: %s
- Sky condition: %s
`, s.TemperatureC, s.Precipitation1hMm, s.HumidityPct, s.WindSpeedMs, s.PrecipType, s.SkyType)
}

// outputText pulls the first text segment out of output[0].content[0].
func outputText(resp GenerationResponse) (string, error) {
	if len(resp.Output) == 0 || len(resp.Output[0].Content) == 0 {
		return "", ErrMalformedResponse
	}
	return resp.Output[0].Content[0].Text, nil
}
