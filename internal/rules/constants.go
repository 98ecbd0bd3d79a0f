package rules

// Config file names inside the config directory
const (
	RewardConfigFile = "mobmoney.json"
	EntityConfigFile = "entities.json"

	rewardSchemaName = "mobmoney.schema.json"
	entitySchemaName = "entities.schema.json"
)

// Category default values used when a category omits a key
const (
	DefaultCategoryMin        = 0.0
	DefaultCategoryMax        = 0.0
	DefaultCategoryDropChance = 0.0
	DefaultCategoryDrops      = "1"
	DefaultCategoryOnlyOnKill = true
	DefaultEntityEnabled      = true
)

// Log messages
const (
	LogMsgRulesLoaded       = "Reward rules loaded"
	LogMsgCategoryLoaded    = "Reward category loaded"
	LogMsgRuleWarning       = "Reward rule misconfigured"
	LogMsgEntityFileMissing = "Entity display name file not found, using entity types"
	LogMsgDuplicateEntity   = "Entity configured in more than one category"
	LogMsgReloadFailed      = "Reward rule reload failed, keeping previous rules"
	LogMsgReloadSucceeded   = "Reward rules reloaded"
)

// Warning formats
const (
	warnInvertedRange = "%s: min reward %.2f is greater than max reward %.2f"
	warnDropSpec      = "%s: %v"
	warnDuplicate     = "%s: configured in categories %s and %s, using %s"
)
