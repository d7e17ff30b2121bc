package genai

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	openai "github.com/openai/openai-go/v2"

	"github.com/furnishly/backend/internal/domain"
)

const systemPrompt = `You are a creative furniture product description writer. ` +
	`Write a compelling 2-3 sentence product description that highlights the ` +
	`product's unique features and benefits, uses descriptive and appealing ` +
	`language, appeals to the target customer's lifestyle and needs, and ` +
	`maintains a professional yet friendly tone.`

// featuresExcerptLen caps how much of the raw description is fed to the
// prompt as "key features".
const featuresExcerptLen = 200

// descriptionPayload is the structured completion response
type descriptionPayload struct {
	Description string `json:"description" jsonschema:"title=Description,description=A compelling 2-3 sentence marketing description for the product."`
}

// descriptionPrompt builds the system and user messages for a product
func descriptionPrompt(product *domain.Product) (system, user string) {
	price := "Affordable"
	if product.Price != nil {
		price = fmt.Sprintf("$%.2f", *product.Price)
	}

	brand := product.Brand
	if brand == "" {
		brand = "Unknown Brand"
	}

	material := product.Material
	if material == "" {
		material = "Quality Materials"
	}

	color := product.Color
	if color == "" {
		color = "Versatile Color"
	}

	features := strings.TrimSpace(product.Description)
	if len(features) > featuresExcerptLen {
		features = features[:featuresExcerptLen]
	}
	if features == "" {
		features = "Stylish and functional design"
	}

	user = fmt.Sprintf(`Generate a product description based on the following details:

Product Title: %s
Brand: %s
Category: %s
Material: %s
Color: %s
Price: %s
Key Features: %s`,
		product.Title, brand, product.MainCategory(), material, color, price, features)

	return systemPrompt, user
}

// descriptionResponseFormat returns the strict JSON-schema response format
// for description completions.
func descriptionResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(descriptionPayload{})

	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        "product_description",
				Description: openai.String("Generated product marketing description"),
				Schema:      schema,
				Strict:      openai.Bool(true),
			},
		},
	}
}
