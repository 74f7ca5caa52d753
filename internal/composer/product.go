package composer

import (
	"fmt"
	"strings"
)

// ComposeProduct builds the product-listing prompt for a catalog image.
// productType is one of hoodie, shirt, hat or apparel, derived from the
// image URL by the catalog package.
func ComposeProduct(imageURL, productType string) string {
	var sb strings.Builder

	sb.WriteString("First, analyze the provided image and identify:\n")
	sb.WriteString("1. Product type (hoodie, hat, or shirt)\n")
	sb.WriteString("2. Any logos, designs, or text present\n")
	sb.WriteString("3. Color and style details\n\n")

	sb.WriteString(fmt.Sprintf("Image URL: %s\n", imageURL))
	sb.WriteString(fmt.Sprintf("Likely product type: %s\n\n", productType))

	sb.WriteString("Product details (for context only - don't copy directly):\n")
	sb.WriteString("- Hoodies: Premium 420g weight, no drawcord design, double layer hood, blind stitch seams\n")
	sb.WriteString("- Hats: 100% cotton ripstop, 5-panel, rope detail, snapback\n")
	sb.WriteString("- Shirts: 100% cotton, 8.2oz heavyweight, preshrunk, side seamed\n\n")

	sb.WriteString("Key points:\n")
	sb.WriteString("- I personally design and wear these products\n")
	sb.WriteString("- Ships from Huntington Beach, USA, free shipping included\n")
	sb.WriteString("- Limited drops (50 units max), made to order\n")
	sb.WriteString("- Premium quality at fair price, quick shipping (1-5 days domestic)\n")
	sb.WriteString("- DM for questions, tracking sent via DM\n\n")

	sb.WriteString("Special cases:\n")
	sb.WriteString("- If the design includes \"X\" (the platform formerly known as Twitter), the title MUST be \"not a x [product]\" since it is unofficial merch\n")
	sb.WriteString("- For X designs, emphasize the unofficial/independent nature subtly\n")
	sb.WriteString("- Always use product-specific details (420g for hoodies, ripstop for hats, 8.2oz for shirts)\n\n")

	sb.WriteString("Title rules:\n")
	sb.WriteString("- Must be lowercase, max 4 words\n")
	sb.WriteString("- For X designs: always \"not a x [product]\"\n")
	sb.WriteString("- For other designs: \"[design] [product]\" or \"premium [product]\"\n\n")

	sb.WriteString("Description rules:\n")
	sb.WriteString("- 5-6 natural sentences that build trust\n")
	sb.WriteString("- Structure: personal context hook; quality details; customer experience promise; shipping/support specifics; trust-building closer; call to action\n")
	sb.WriteString("- Include concrete reassurances like \"ships in 3-7 days anywhere in usa\", \"tracking number sent right to ur dms\", \"dm me anytime with questions\", \"quality guaranteed or money back\"\n\n")

	sb.WriteString("Return ONLY a JSON object with this structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"title\": \"not a x hoodie\",\n")
	sb.WriteString("  \"description\": \"been perfecting this design for months - 420g premium weight from my trusted supplier in huntington beach. quality actually matters to me so im doing everything right - premium materials only. ships in 3-7 days anywhere in usa with tracking number sent to ur dms. satisfaction guaranteed or money back, just dm me. small batch dropping today + free premium shipping included\"\n")
	sb.WriteString("}")

	return sb.String()
}
