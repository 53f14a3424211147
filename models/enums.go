package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ModuleStatus string

const (
	ModuleStatusNotStarted ModuleStatus = "not_started"
	ModuleStatusInProgress ModuleStatus = "in_progress"
	ModuleStatusComplete   ModuleStatus = "complete"
	ModuleStatusAvailable  ModuleStatus = "available"
	ModuleStatusNotReady   ModuleStatus = "not_ready"
	ModuleStatusComingSoon ModuleStatus = "coming_soon"
)

type PeriodType string

const (
	PeriodTypeFullYear  PeriodType = "full_year"
	PeriodTypeYTD       PeriodType = "ytd"
	PeriodTypeOpeningBS PeriodType = "opening_bs"
)

type PeriodStatus string

const (
	PeriodStatusMissing  PeriodStatus = "missing"
	PeriodStatusPartial  PeriodStatus = "partial"
	PeriodStatusComplete PeriodStatus = "complete"
)

type DocRole string

const (
	DocRoleFinancialPack DocRole = "financial_pack"
	DocRolePnl           DocRole = "pnl"
	DocRoleBalanceSheet  DocRole = "balance_sheet"
	DocRoleCashFlow      DocRole = "cash_flow"
	DocRoleTrialBalance  DocRole = "trial_balance"
	DocRoleOther         DocRole = "other"
)

func (r DocRole) IsValid() bool {
	switch r {
	case DocRoleFinancialPack, DocRolePnl, DocRoleBalanceSheet,
		DocRoleCashFlow, DocRoleTrialBalance, DocRoleOther:
		return true
	}
	return false
}

type StrategyDomain string

const (
	StrategyDomainGrowthMarket  StrategyDomain = "growth_market"
	StrategyDomainGrowthProduct StrategyDomain = "growth_product"
	StrategyDomainOperations    StrategyDomain = "operations"
	StrategyDomainPeople        StrategyDomain = "people"
	StrategyDomainFinancials    StrategyDomain = "financials"
)

func (d StrategyDomain) IsValid() bool {
	switch d {
	case StrategyDomainGrowthMarket, StrategyDomainGrowthProduct,
		StrategyDomainOperations, StrategyDomainPeople, StrategyDomainFinancials:
		return true
	}
	return false
}

// AllStrategyDomains keeps the ideation board's column order stable.
var AllStrategyDomains = []StrategyDomain{
	StrategyDomainGrowthMarket,
	StrategyDomainGrowthProduct,
	StrategyDomainOperations,
	StrategyDomainPeople,
	StrategyDomainFinancials,
}

type StrategySourceTag string

const (
	StrategySourceSwot             StrategySourceTag = "swot"
	StrategySourceSsk              StrategySourceTag = "ssk"
	StrategySourceVision           StrategySourceTag = "vision"
	StrategySourceCustomerInsights StrategySourceTag = "customer_insights"
	StrategySourceFinancials       StrategySourceTag = "financials"
	StrategySourceOther            StrategySourceTag = "other"
)

func (t StrategySourceTag) IsValid() bool {
	switch t {
	case StrategySourceSwot, StrategySourceSsk, StrategySourceVision,
		StrategySourceCustomerInsights, StrategySourceFinancials, StrategySourceOther:
		return true
	}
	return false
}

// StringList stores a list of free-text entries in a MySQL json column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// IntList stores a list of covered years in a MySQL json column.
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IntList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}
