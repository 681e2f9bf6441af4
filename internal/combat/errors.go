package combat

import "errors"

var (
	ErrBattleNotFound   = errors.New("battle not found")
	ErrBattlerNotFound  = errors.New("battler is not part of this battle")
	ErrBattleOver       = errors.New("battle is already over")
	ErrWaitingForSwitch = errors.New("waiting for another battler to switch")
	ErrSwitchRequired   = errors.New("a switch is required")
	ErrInvalidSwitch    = errors.New("invalid switch target")
	ErrInvalidAction    = errors.New("invalid action")
	ErrNoPendingSwitch  = errors.New("no switch is pending for this battler")
	ErrInvalidBattle    = errors.New("invalid battle setup")
	ErrNotReady         = errors.New("actions are still missing")
)
