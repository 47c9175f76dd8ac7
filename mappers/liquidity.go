package mappers

import (
	"fmt"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/assets"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/util"
	"github.com/shopspring/decimal"
)

// pool describes the LP token of an add or withdraw.
type pool struct {
	name      string
	lpToken   string
	symmetric string
}

// Savers LP units are denominated in the saved asset, so their token keeps the synth form
// (ThorLP.BTC/BTC) to isolate cost basis per asset.
func parsePool(mapperName string, action midgard.Action, legs int) (pool, error) {
	if len(action.Pools) == 0 {
		return pool{}, &MapperError{Mapper: mapperName, Message: "No pool"}
	}

	raw := action.Pools[0]
	canonical, err := assets.ParsePool(raw)
	if err != nil {
		return pool{}, err
	}

	p := pool{
		name:    "ThorLP." + canonical,
		lpToken: "ThorLP." + canonical,
	}

	switch {
	case strings.Contains(raw, "/"):
		p.symmetric = "savers"
		p.lpToken = "ThorLP." + raw
	case legs == 2:
		p.symmetric = "symmetric"
	default:
		p.symmetric = "asymmetric"
	}

	return p, nil
}

// lpQuote doubles the first leg when two legs were moved, treating the pool side as 50/50 value.
func lpQuote(first cryptotaxcalculator.Row, legs int) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(first.BaseAmount)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(decimal.NewFromInt(int64(legs))), nil
}

type AddLiquidityMapper struct{}

func (AddLiquidityMapper) Name() string { return "AddLiquidityMapper" }

func (m AddLiquidityMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action
	numAssetsIn := len(action.In)

	if numAssetsIn == 0 || numAssetsIn > 2 {
		return nil, &InvalidInputCountError{
			Mapper:  m.Name(),
			Message: fmt.Sprintf("numAssetsIn must either be 1 or 2 but was %d", numAssetsIn),
			Count:   numAssetsIn,
		}
	}

	// Two leg deposits are expected to list RUNE first.
	if numAssetsIn == 2 {
		first, err := firstCoin(m.Name(), "in", action.In[0])
		if err != nil {
			return nil, err
		}
		if first.Asset != assets.RuneAsset {
			return nil, &MapperError{Mapper: m.Name(), Message: fmt.Sprintf("Expected first deposit to be %s but was %s", assets.RuneAsset, first.Asset)}
		}
	}

	p, err := parsePool(m.Name(), action, numAssetsIn)
	if err != nil {
		return nil, err
	}

	liquidityUnits, err := util.ToAssetAmount(action.Metadata.AddLiquidity.LiquidityUnits)
	if err != nil {
		return nil, err
	}

	txID := action.In[0].TxID
	depositAddress := orMissing(action.In[0].Address)
	total := numAssetsIn + 2
	k := 1

	var rows []cryptotaxcalculator.Row

	for _, deposit := range action.In {
		coin, err := firstCoin(m.Name(), "in", deposit)
		if err != nil {
			return nil, err
		}
		asset, amount, err := parseCoin(coin)
		if err != nil {
			return nil, err
		}

		rows = append(rows, cryptotaxcalculator.Row{
			WalletExchange: orMissing(deposit.Address),
			Date:           c.Date,
			Type:           cryptotaxcalculator.AddLiquidity,
			BaseCurrency:   asset.Currency,
			BaseAmount:     amount,
			From:           orMissing(deposit.Address),
			To:             ThorchainLedger,
			Blockchain:     asset.Blockchain,
			ID:             c.ID("add-liquidity." + asset.Currency),
			Description:    fmt.Sprintf("%d/%d - Add liquidity %s to %s (%s); %s", k, total, asset.Currency, p.name, p.symmetric, txID),
		})
		k++
	}

	quoteCurrency := rows[0].BaseCurrency
	quoteAmount, err := lpQuote(rows[0], numAssetsIn)
	if err != nil {
		return nil, err
	}

	receive := cryptotaxcalculator.Row{
		WalletExchange: depositAddress,
		Date:           c.At(1),
		Type:           cryptotaxcalculator.ReceiveLpToken,
		BaseCurrency:   p.lpToken,
		BaseAmount:     liquidityUnits,
		From:           ThorchainLedger,
		To:             depositAddress,
		Blockchain:     ThorBlockchain,
		ID:             c.ID("receive-lp-token"),
		Description:    fmt.Sprintf("%d/%d - Receive LP token from %s (%s); %s", k, total, p.name, p.symmetric, txID),
	}
	k++

	if c.AddReferencePrices {
		perUnit, err := c.ReferencePrice(m.Name(), liquidityUnits, quoteCurrency, quoteAmount)
		if err != nil {
			return nil, err
		}
		receive.ReferencePricePerUnit = perUnit
		receive.ReferencePriceCurrency = cryptotaxcalculator.ReferencePriceCurrencyUSD
	}

	rows = append(rows, receive)

	// Ignored by the importer. Its market value is copied onto the receive-lp-token row by hand.
	rows = append(rows, cryptotaxcalculator.Row{
		WalletExchange: depositAddress,
		Date:           c.At(2),
		Type:           cryptotaxcalculator.Spam,
		BaseCurrency:   quoteCurrency,
		BaseAmount:     quoteAmount.String(),
		From:           ThorchainLedger,
		To:             depositAddress,
		ID:             c.ID("spam"),
		Description: fmt.Sprintf("%d/%d - Dummy transaction to get market price to then manually apply to the receive LP token transaction %s (%s); %s",
			k, total, p.name, p.symmetric, txID),
	})

	reverse(rows)

	return rows, nil
}

type WithdrawMapper struct{}

func (WithdrawMapper) Name() string { return "WithdrawMapper" }

// ToEntries ignores network fees on the withdrawn legs. They are taken before the assets are
// returned and would otherwise produce negative balances.
func (m WithdrawMapper) ToEntries(c *Context) ([]cryptotaxcalculator.Row, error) {
	action := c.Action
	numAssetsOut := len(action.Out)

	if numAssetsOut == 0 || numAssetsOut > 2 {
		return nil, &InvalidInputCountError{
			Mapper:  m.Name(),
			Message: fmt.Sprintf("numAssetsOut must either be 1 or 2 but was %d", numAssetsOut),
			Count:   numAssetsOut,
		}
	}

	if len(action.In) == 0 {
		return nil, requireCount(m.Name(), "numAssetsIn", 1, 0)
	}

	p, err := parsePool(m.Name(), action, numAssetsOut)
	if err != nil {
		return nil, err
	}

	liquidityUnits, err := util.ToAssetAmount(action.Metadata.Withdraw.LiquidityUnits)
	if err != nil {
		return nil, err
	}
	liquidityUnits = strings.TrimPrefix(liquidityUnits, "-")

	withdrawals := runeFirst(action.Out)
	requester := action.In[0].Address
	total := numAssetsOut + 2
	k := total

	var removes []cryptotaxcalculator.Row

	for _, withdraw := range withdrawals {
		coin, err := firstCoin(m.Name(), "out", withdraw)
		if err != nil {
			return nil, err
		}
		asset, amount, err := parseCoin(coin)
		if err != nil {
			return nil, err
		}

		removes = append(removes, cryptotaxcalculator.Row{
			WalletExchange: withdraw.Address,
			Date:           c.At(2),
			Type:           cryptotaxcalculator.RemoveLiquidity,
			BaseCurrency:   asset.Currency,
			BaseAmount:     amount,
			From:           ThorchainLedger,
			To:             withdraw.Address,
			Blockchain:     asset.Blockchain,
			ID:             c.ID("remove-liquidity." + asset.Currency),
			Description:    fmt.Sprintf("%d/%d - Remove liquidity %s from %s (%s)", k, total, asset.Currency, p.name, p.symmetric),
		})
		k--
	}

	quoteCurrency := removes[0].BaseCurrency
	quoteAmount, err := lpQuote(removes[0], numAssetsOut)
	if err != nil {
		return nil, err
	}

	perUnit, err := c.ReferencePrice(m.Name(), liquidityUnits, quoteCurrency, quoteAmount)
	if err != nil {
		return nil, err
	}

	spam := cryptotaxcalculator.Row{
		WalletExchange: requester,
		Date:           c.At(1),
		Type:           cryptotaxcalculator.Spam,
		BaseCurrency:   quoteCurrency,
		BaseAmount:     quoteAmount.String(),
		From:           requester,
		To:             ThorchainLedger,
		ID:             c.ID("spam"),
		Description: fmt.Sprintf("%d/%d - Dummy transaction to get market price to then manually apply to the return LP token transaction %s (%s)",
			k, total, p.name, p.symmetric),
	}
	k--

	returnLp := cryptotaxcalculator.Row{
		WalletExchange:         requester,
		Date:                   c.Date,
		Type:                   cryptotaxcalculator.ReturnLpToken,
		BaseCurrency:           p.lpToken,
		BaseAmount:             liquidityUnits,
		From:                   requester,
		To:                     ThorchainLedger,
		Blockchain:             ThorBlockchain,
		ID:                     c.ID("return-lp-token"),
		Description:            fmt.Sprintf("%d/%d - Return LP token to %s (%s)", k, total, p.name, p.symmetric),
		ReferencePricePerUnit:  perUnit,
		ReferencePriceCurrency: cryptotaxcalculator.ReferencePriceCurrencyUSD,
	}

	rows := append([]cryptotaxcalculator.Row{returnLp, spam}, removes...)
	reverse(rows)

	return rows, nil
}

// runeFirst puts the leg paid to a THORChain address first. Midgard does not order withdraw legs.
func runeFirst(out []midgard.Transaction) []midgard.Transaction {
	if len(out) == 2 && !strings.HasPrefix(out[0].Address, "thor") {
		return []midgard.Transaction{out[1], out[0]}
	}
	return out
}

func reverse(rows []cryptotaxcalculator.Row) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
