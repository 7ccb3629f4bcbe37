package settings

// DB config keys and defaults for settings.
const (
	// SiteNameKey is the DB config key for the site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback site name.
	DefaultSiteName = "Inkwell"
	// PostsOnPageKey controls how many posts a feed page holds.
	PostsOnPageKey = "POSTS_ON_PAGE"
	// PreviewLengthKey controls the post preview length in runes.
	PreviewLengthKey = "PREVIEW_LENGTH"
	// DefaultPostsOnPage is the fallback feed page size.
	DefaultPostsOnPage = 10
	// DefaultPreviewLength is the fallback post preview length.
	DefaultPreviewLength = 15
)
