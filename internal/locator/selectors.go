package locator

// X.com DOM selectors and cascades
// These are isolated here because X changes their DOM frequently
// Update these when scraping or injection breaks

const (
	// Feed selectors
	FeedContainer = `[data-testid="primaryColumn"]`
	PostArticle   = `article[data-testid="tweet"]`

	// Post content selectors
	PostText      = `[data-testid="tweetText"]`
	PostMediaImg  = `img[src*="media"]`
	OutboundLinks = `a[role="link"]`
	ActionsBar    = `[role="group"]`

	// Compose action triggers
	ReplyButton   = `[data-testid="reply"]`
	RetweetButton = `[data-testid="retweet"]`
	QuoteMenuItem = `[data-testid="Dropdown"] a[href*="compose"]`

	// Catalog page (shopping manager)
	CatalogURLFragment = "ads.x.com/shopping_manager/catalog"
	CatalogImageInput  = `input[type="text"][placeholder*="URL"]`
	CatalogTitleInput  = `.Panel-body .Grid--withGutter input[placeholder*="title"]`
	CatalogDescInput   = `.Panel-body .Grid--withGutter textarea`
	CatalogBrandInput  = `.Panel-body .Grid--withGutter input[placeholder*="brand"]`
)

// Author lookup: structural role first, then the legacy attribute shape.
var Author = Cascade{
	{Name: "user-name", Selector: `[data-testid="User-Name"]`},
	{Name: "author-name", Selector: `[data-testid="author-name"]`},
}

// Quoted content inside a post.
var Quoted = Cascade{
	{Name: "blockquote-role", Selector: `[role="blockquote"]`},
	{Name: "quote-testid", Selector: `[data-testid="quoteTweet"]`},
}

// ComposeInput is the cascade the poller walks while waiting for the
// compose box to appear after the reply/quote action is triggered.
var ComposeInput = Cascade{
	{Name: "compose-textarea", Selector: `[data-testid="tweetTextarea_0"]`},
	{Name: "layers-textarea", Selector: `#layers textarea`},
	{Name: "layers-textbox-role", Selector: `#layers [role="textbox"]`},
	{Name: "layers-contenteditable", Selector: `#layers div[contenteditable="true"]`},
}
