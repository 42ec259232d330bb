package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixCatalogTree  CachePrefix = "CATALOG_TREE_"
	CachePrefixCatalogStage CachePrefix = "CATALOG_STAGE_"
	CachePrefixOAuthState   CachePrefix = "oauth_state:"
	CachePrefixRevoked      CachePrefix = "revoked_session:"
)

const (
	SessionCookieName  = "pf_session"
	LanguageCookieName = "pf_lang"
)
