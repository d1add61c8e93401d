package models

// DashboardStats aggregates the headline numbers shown on the shop dashboard.
// Monetary values are in rupees since this is a display-only view.
type DashboardStats struct {
	TotalActiveLoans    int     `json:"totalActiveLoans"`
	TotalLoanAmount     float64 `json:"totalLoanAmount"`
	TotalGoldWeight     float64 `json:"totalGoldWeight"`
	OverdueLoans        int     `json:"overdueLoans"`
	TodayCollections    float64 `json:"todayCollections"`
	TotalCustomers      int     `json:"totalCustomers"`
	TotalInterestEarned float64 `json:"totalInterestEarned"`
}

// RecentLoan is a loan row joined with customer identity for dashboard lists
type RecentLoan struct {
	Loan
	CustomerName   string `json:"customerName"`
	CustomerMobile string `json:"customerMobile"`
}

// RecentPayment is a payment row joined with loan and customer identity
type RecentPayment struct {
	Payment
	LoanNumber   string `json:"loanNumber"`
	CustomerName string `json:"customerName"`
}
