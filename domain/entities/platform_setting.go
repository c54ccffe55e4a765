package entities

import "time"

// PlatformSetting is a key/value configuration row editable by admins,
// e.g. the staking receiving wallet addresses.
type PlatformSetting struct {
	ID        string    `json:"id" db:"id"`
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Well-known platform setting keys
const (
	SettingReceivingWalletBEP20 = "receiving_wallet_bep20"
	SettingReceivingWalletERC20 = "receiving_wallet_erc20"
)
