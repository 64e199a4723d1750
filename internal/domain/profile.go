package domain

// CoverageBasis define quais linhas contam para a taxa de cobertura
type CoverageBasis string

const (
	// CoverageNonStaff conta toda linha que não foi tratada por staff
	CoverageNonStaff CoverageBasis = "all"
	// CoverageAutomationOnly conta apenas linhas de automação
	CoverageAutomationOnly CoverageBasis = "automation-only"
)

const (
	DefaultDepositOverdueThreshold  = 60.0
	DefaultWithdrawOverdueThreshold = 300.0
)

// AggregationProfile parametriza o motor de agregação por tipo de transação
type AggregationProfile struct {
	Kind                    TransactionKind
	OverdueThresholdSeconds float64
	CoverageBasis           CoverageBasis
	IncludeCoverageRate     bool
	IncludeCaseVolume       bool
}

var (
	DepositProfile = AggregationProfile{
		Kind:                    TransactionKindDeposit,
		OverdueThresholdSeconds: DefaultDepositOverdueThreshold,
		CoverageBasis:           CoverageNonStaff,
		IncludeCoverageRate:     true,
		IncludeCaseVolume:       true,
	}

	WithdrawProfile = AggregationProfile{
		Kind:                    TransactionKindWithdraw,
		OverdueThresholdSeconds: DefaultWithdrawOverdueThreshold,
		CoverageBasis:           CoverageNonStaff,
		IncludeCoverageRate:     false,
		IncludeCaseVolume:       false,
	}
)

// Profiles agrupa os perfis de agregação disponíveis
type Profiles map[TransactionKind]AggregationProfile

// NewProfiles monta os perfis padrão com os limites informados
func NewProfiles(depositThreshold, withdrawThreshold float64) Profiles {
	deposit := DepositProfile
	if depositThreshold > 0 {
		deposit.OverdueThresholdSeconds = depositThreshold
	}

	withdraw := WithdrawProfile
	if withdrawThreshold > 0 {
		withdraw.OverdueThresholdSeconds = withdrawThreshold
	}

	return Profiles{
		TransactionKindDeposit:  deposit,
		TransactionKindWithdraw: withdraw,
	}
}

// ProfileByKind retorna o perfil do tipo informado
func (p Profiles) ProfileByKind(kind TransactionKind) (AggregationProfile, bool) {
	profile, ok := p[kind]
	return profile, ok
}
