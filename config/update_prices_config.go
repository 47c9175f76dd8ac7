package config

import (
	"errors"

	"github.com/koitsu/thorchain-cryptotax/util"
)

type UpdatePricesConfig struct {
	Log    log
	Prices Prices
}

func (conf *UpdatePricesConfig) Validate() error {
	if util.StrNotSet(conf.Prices.RepoURL) {
		return errors.New("prices repo-url must be set")
	}
	if util.StrNotSet(conf.Prices.Dir) {
		return errors.New("prices dir must be set")
	}
	return nil
}
