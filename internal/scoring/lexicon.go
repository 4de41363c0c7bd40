package scoring

// Static lexicons for the rule-based scoring layer. Initialized once at
// process start, read-only afterwards; safe for unsynchronized concurrent
// reads from batch workers.

// positiveWords and negativeWords carry fixed polarity weights.
var positiveWords = map[string]float64{
	"amazing": 1.0, "awesome": 1.0, "best": 1.0, "brilliant": 1.0,
	"excellent": 1.0, "exceptional": 1.0, "fantastic": 1.0, "great": 0.8,
	"incredible": 1.0, "outstanding": 1.0, "perfect": 1.0, "remarkable": 1.0,
	"stunning": 1.0, "superb": 1.0, "wonderful": 1.0, "beautiful": 0.8,
	"elegant": 0.8, "impressive": 0.8, "innovative": 0.8, "professional": 0.6,
	"quality": 0.6, "reliable": 0.8, "successful": 0.8, "trusted": 0.8,
	"valuable": 0.8, "premium": 0.8, "exclusive": 0.8, "leading": 0.6,
	"proven": 0.8, "guaranteed": 0.8, "certified": 0.6, "recommended": 0.8,
	"popular": 0.6, "favorite": 0.8, "loved": 0.8, "easy": 0.6,
	"simple": 0.6, "fast": 0.6, "quick": 0.6, "instant": 0.6,
	"free": 0.6, "affordable": 0.6, "efficient": 0.6, "effective": 0.6,
	"powerful": 0.8, "advanced": 0.6, "modern": 0.6, "revolutionary": 1.0,
}

var negativeWords = map[string]float64{
	"bad": 0.8, "terrible": 1.0, "awful": 1.0, "horrible": 1.0,
	"poor": 0.8, "worst": 1.0, "disappointing": 1.0, "frustrating": 1.0,
	"annoying": 0.8, "difficult": 0.6, "complicated": 0.6, "confusing": 0.8,
	"expensive": 0.6, "overpriced": 0.8, "slow": 0.6, "broken": 0.8,
	"failed": 0.8, "error": 0.6, "problem": 0.6, "issue": 0.4,
	"bug": 0.6, "crash": 0.8, "spam": 0.8, "scam": 1.0,
	"fake": 0.8, "cheap": 0.4, "unreliable": 1.0, "risky": 0.8,
	"dangerous": 0.8, "harmful": 0.8, "boring": 0.8, "ugly": 0.8,
	"outdated": 0.8,
}

// powerWords is the curated high-CTR list. Grouped by the trigger they pull:
// urgency, exclusivity, trust, value, results.
var powerWords = map[string]bool{
	// Urgency
	"now": true, "today": true, "instant": true, "immediately": true,
	"hurry": true, "limited": true, "deadline": true, "urgent": true,
	// Exclusivity
	"exclusive": true, "premium": true, "vip": true, "insider": true,
	"secret": true, "rare": true, "unique": true, "special": true,
	// Trust
	"guaranteed": true, "proven": true, "certified": true, "official": true,
	"authentic": true, "verified": true, "trusted": true, "secure": true,
	"safe": true, "protected": true, "backed": true,
	// Value
	"free": true, "bonus": true, "save": true, "discount": true,
	"deal": true, "bargain": true, "value": true, "worth": true,
	"affordable": true,
	// Results
	"results": true, "success": true, "achieve": true, "transform": true,
	"improve": true, "boost": true, "increase": true, "maximize": true,
	"optimize": true, "accelerate": true, "unlock": true, "discover": true,
}
