package taxonomy

// PositiveOrder is the fixed category order for positive-prompt analysis
// and for prompt synthesis. Earlier categories end up earlier in the
// synthesized string, where downstream samplers weight tokens more heavily.
var PositiveOrder = []string{
	"subject",
	"pose",
	"environment",
	"body_features",
	"hair",
	"clothing",
	"lighting",
	"art_style",
	"quality",
	"camera",
	"composition",
	"emotion",
	"skin_features",
	"physical_details",
	"special_effects",
}

// NegativeOrder is the fixed category order for negative-prompt analysis.
var NegativeOrder = []string{
	"quality",
	"anatomy",
	"style",
	"unwanted_features",
	"censoring",
}

// Labels maps category names to display names for selection pickers.
var Labels = map[string]string{
	"subject":          "Subject",
	"pose":             "Pose / Position",
	"environment":      "Environment / Setting",
	"body_features":    "Body Features",
	"hair":             "Hair Style / Color",
	"clothing":         "Clothing / Accessories",
	"lighting":         "Lighting",
	"art_style":        "Art Style",
	"quality":          "Quality Tags",
	"camera":           "Camera / Technical",
	"composition":      "Composition",
	"emotion":          "Emotion / Expression",
	"skin_features":    "Skin Features",
	"physical_details": "Physical Details",
	"special_effects":  "Special Effects",
}

// positivePatterns is the rule table for positive-prompt categories.
// Inner alternations of compound phrases are non-capturing so a compound
// concept ("face focus") stays a single matched term.
var positivePatterns = map[string][]string{
	"subject": {
		`\b(1girl|1boy|2girls|2boys|female|futana?ri|woman|man|girl|boy)\b`,
		`\b(1femboy|solo|femboy)\b`,
	},
	"pose": {
		`\b(sitting|seated|sit|stands?ing|stand|lying|lay|pinup pose|kneeling|kneel|` +
			`squatting|squat|legs apart|legs spread|on back|on stomach|bent over|` +
			`from behind|from above|from front|profile|side view|front view)\b`,
	},
	"environment": {
		`\b(beach|tropical|outdoor|indoor|studio|room|forest|desert|mountain|` +
			`city|night|day|sunset|sunrise|dawn|dusk|sky|clouds|grass|palm|` +
			`resort|ocean|sea|lake|pool|bed|chair|couch|wall|floor|background)\b`,
	},
	"body_features": {
		`\b(large breasts|big breasts|huge breasts|massive breasts|small breasts|flat chest|` +
			`athletic|thin|curvy|curvaceous|wide hips|tiny waist|petite|slim|fit|fitness|` +
			`muscular|toned|plump|chubby|hourglass|big ass|flat ass)\b`,
	},
	"hair": {
		`\b(long hair|short hair|medium hair|blonde|brunette|red hair|black hair|` +
			`blue hair|pink hair|green hair|white hair|grey hair|curly hair|wavy hair|` +
			`straight hair|bald|shaved|ponytail|braids|pixie cut|long wavy|short pixie)\b`,
	},
	"clothing": {
		`\b(bikini|swimsuit|naked|nude|topless|clothed|jeans|shirt|dress|` +
			`skirt|blouse|pants|shorts|underwear|bra|thong|lingerie|bodysuit|` +
			`costume|uniform|suit|tie|hat|glasses|jewelry|necklace|earrings|` +
			`bracelet|ring|tiara|crown|wings|halo|aura)\b`,
	},
	"lighting": {
		`\b(sunset|sunrise|dramatic lighting|studio lighting|soft lighting|` +
			`natural lighting|neon|backlit|rim light|godrays|shadow|` +
			`high contrast|low key|high key|golden hour|blue hour|night|` +
			`dark|bright|dim|spotlight)\b`,
	},
	"art_style": {
		`\b(realistic photograph|photorealistic|realistic photo|photograph|photo of|` +
			`anime|manga|illustration|digital painting|oil painting|watercolor|` +
			`3d render|cg|cartoon|comic|sketch|draft)\b`,
	},
	"quality": {
		`\b(8k|4k|high resolution|highres|absurdres|masterpiece|best quality|` +
			`amazing quality|ultra realistic|sharp focus|fine details|detailed|` +
			`HDR|realism|realistic|sharp|clear|crisp|ultra detailed)\b`,
	},
	"camera": {
		`\b(75mm|85mm|50mm|35mm|wide angle|telephoto|macro|depth of field|` +
			`DOF|bokeh|sharp focus|soft focus|blurry|close-up|wide shot|` +
			`full body|portrait|cowboy shot|headshot|medium shot|long shot|` +
			`Technicolor|Panavision|Cinemascope|Kodak|Film)\b`,
	},
	"composition": {
		`\b(close-up|closeup|medium shot|wide shot|full body|headshot|cowboy shot|` +
			`portrait|bust|waist up|thigh up|full shot|aerial|worm|` +
			`(?:ass|breast|face|body) focus|solo focus)\b`,
	},
	"emotion": {
		`\b(smiling|smile|laughing|crying|sad|angry|happy|sexy|` +
			`seductive|confident|shy|nervous|relaxed|calm|mad|pleased|` +
			`blushing|blush|embarrassed|fear|surprised|worried|confused)\b`,
	},
	"skin_features": {
		`\b(sweaty|wet|shiny|oily|dry|pale|fair|dark|tan|bronzed|glowing|` +
			`radiant|matte|smooth|rough|soft|velvety|clear|flawless|perfect skin|` +
			`skin texture)\b`,
	},
	"physical_details": {
		`\b(abs|muscles|muscular|veins|tattoos|tattoo|piercings|piercing|` +
			`scars|marks|freckles|moles|birthmark|dimples|sweat|sweaty|` +
			`breathing|veiny|hairy|hairless|smooth skin)\b`,
	},
	"special_effects": {
		`\b(godrays|particles|sparkles|glitter|smoke|fog|mist|fire|flames|` +
			`water|rain|snow|wind|leaves|petals|magic|sparkle|glow|shimmer)\b`,
	},
}

// negativePatterns is the rule table for negative-prompt exclusion
// categories.
var negativePatterns = map[string][]string{
	"quality": {
		`\b(worst quality|low quality|poor quality|bad quality|lowres|blur|blurry|` +
			`blurred|pixelated|upscaled|compression artifacts|jpeg artifacts)\b`,
	},
	"anatomy": {
		`\b(bad anatomy|wrong anatomy|disfigured|deformed|mutated|ugly|` +
			`missing (?:limbs|fingers|toes|arms|legs)|extra (?:limbs|fingers|toes)|` +
			`fused (?:fingers|limbs)|too many fingers|fewer fingers|` +
			`bad hands|bad feet|bad face|ugly face|weird face)\b`,
	},
	"style": {
		`\b(3d|cartoon|anime|manga|comic|sketch|drawing|painting|` +
			`illustrated|clipart|vector|watermark|signature|text|logo)\b`,
	},
	"unwanted_features": {
		`\b(fat|chubby|overweight|thin|skinny|malnourished|skeletal|` +
			`child|kid|teen|underage|adult|mature)\b`,
	},
	"censoring": {
		`\b(censor|censored|bar censor|mosaic|blur|covered|hidden)\b`,
	},
}

// Positive is the positive-prompt taxonomy, compiled once at startup.
var Positive = New(PositiveOrder, positivePatterns)

// Negative is the negative-prompt exclusion taxonomy.
var Negative = New(NegativeOrder, negativePatterns)
