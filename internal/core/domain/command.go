package domain

type CommandType string

const (
	CmdAddToCart       CommandType = "add_to_cart"
	CmdSetQuantity     CommandType = "set_quantity"
	CmdIncrement       CommandType = "increment"
	CmdDecrement       CommandType = "decrement"
	CmdRemoveFromCart  CommandType = "remove_from_cart"
	CmdSetCategory     CommandType = "set_category"
	CmdSetSearch       CommandType = "set_search"
	CmdSetSort         CommandType = "set_sort"
	CmdClearFilters    CommandType = "clear_filters"
	CmdOpenCart        CommandType = "open_cart"
	CmdCloseCart       CommandType = "close_cart"
	CmdToggleCart      CommandType = "toggle_cart"
	CmdBeginCheckout   CommandType = "begin_checkout"
	CmdConfirmCheckout CommandType = "confirm_checkout"
	CmdCancelCheckout  CommandType = "cancel_checkout"
	CmdEscape          CommandType = "escape"
)

// Command is a discrete user action. Which fields are read depends on Type:
// cart commands read ProductID and Quantity, filter setters read Value.
type Command struct {
	Type      CommandType
	ProductID string
	Quantity  int
	Value     string
}
