package analyzer

// detector is a named bag of substrings; the first hit in any scanned file
// marks the detector matched for the whole project.
type detector struct {
	name     string
	keywords []string
}

// featureDetectors map capability keywords onto the lowercased file text.
// Order here fixes the order of ProjectSignals.Features, which in turn
// fixes feature-query order in the aggregator.
var featureDetectors = []detector{
	{"seo", []string{"sitemap", "meta description", "robots.txt", "canonical", "opengraph", "og:title"}},
	{"forms", []string{"umbraco.forms", "formhandler", "<form", "contact form"}},
	{"commerce", []string{"checkout", "shopping cart", "payment provider", "ucommerce", "vendr", "order total"}},
	{"media", []string{"imageprocessor", "media picker", "imagesharp", "cropper"}},
	{"search", []string{"examine", "lucene", "searchindex", "isearcher"}},
	{"membership", []string{"imemberservice", "memberservice", "login", "register", "two-factor"}},
	{"multilingual", []string{"dictionaryitem", "hreflang", "culture=", "ilocalizationservice"}},
	{"migration", []string{"migrationbase", "packagemigration", "imigrationplan"}},
	{"workflow", []string{"contentservice.publish", "approval", "sendtopublish", "workflowstage"}},
}

// patternDetectors match case-sensitive framework identifiers in source.
var patternDetectors = []detector{
	{"composers", []string{"IComposer", "IUserComposer"}},
	{"notification handlers", []string{"INotificationHandler"}},
	{"surface controllers", []string{"SurfaceController"}},
	{"api controllers", []string{"UmbracoApiController", "ApiController"}},
	{"dependency injection", []string{"IServiceCollection", "AddSingleton", "AddScoped"}},
	{"view components", []string{"ViewComponent"}},
}

// domainKeywords vote on the project's business domain; ties go to the
// earlier entry in domainOrder.
var domainKeywords = map[string][]string{
	"ecommerce":  {"product", "checkout", "cart", "price", "inventory"},
	"publishing": {"article", "author", "editorial", "blog", "newsletter"},
	"corporate":  {"career", "about us", "investor", "press release"},
	"community":  {"member", "forum", "profile", "comment"},
}

var domainOrder = []string{"ecommerce", "publishing", "corporate", "community"}
