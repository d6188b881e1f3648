package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ADMIN_ID_KEY             ContextKey = "admin_id"
	CONTEXT_BEARER_TOKEN_KEY         ContextKey = "bearer_token"
)

const (
	REQUEST_ID_PREFIX = "MRCHEM_ADM_"
)

// Resources exposed by the remote Mr Chemist API.
const (
	ResourceConsultations = "consultations"
	ResourceProducts      = "products"
	ResourceBlogs         = "blogs"
	ResourceTreatments    = "treatments"
	ResourceCustomers     = "customers"
	ResourceOrders        = "orders"
	ResourceUsers         = "users"
)

var ListableResources = map[string]bool{
	ResourceConsultations: true,
	ResourceProducts:      true,
	ResourceBlogs:         true,
	ResourceTreatments:    true,
	ResourceCustomers:     true,
	ResourceOrders:        true,
	ResourceUsers:         true,
}

const (
	DraftKindConsultation = "consultation"
	DraftKindProduct      = "product"
	DraftKindBlog         = "blog"
	DraftKindCustomer     = "customer"
	DraftKindUser         = "user"
)

const (
	RedisKeyDraftFormat         = "draft:%s:%s"
	RedisKeyDraftLockFormat     = "draft-lock:%s"
	RedisKeyListCacheFormat     = "list-cache:%s:%s"
	RedisKeyListCacheSetFormat  = "list-cache-keys:%s"
	RedisKeyNotificationsFormat = "notifications:%s"
	RedisKeyTreatmentOptions    = "treatments:options"
	RedisKeyTreatmentLeaderLock = "treatments:refresh:leader"
)

const (
	AnonymousAdminID = "anonymous"
)

const (
	NotificationLevelSuccess = "success"
	NotificationLevelError   = "error"
)

const (
	InvalidationExchangeName = "mrchemist.list.invalidation"
)
