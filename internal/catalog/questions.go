package catalog

import "finhealth/internal/model"

func q(id string, cat model.CategoryID, text string) model.Question {
	return model.Question{ID: id, Text: text, CategoryID: cat}
}

func defaultMoneySafety() []string {
	return []string{"A1", "A2", "A3"}
}

func defaultCategories() []model.Category {
	A, B, C := model.CategoryFraud, model.CategoryControls, model.CategoryCashFlow
	D, E, F := model.CategoryReporting, model.CategoryTeam, model.CategorySystems

	return []model.Category{
		{ID: A, Title: "Fraud & Money Safety", Questions: []model.Question{
			q("A1", A, "Outgoing payments above a set threshold require approval by two authorised people."),
			q("A2", A, "Changes to supplier or employee bank details are verified by call-back to a known contact before use."),
			q("A3", A, "Bank accounts are reconciled by someone independent of the person who initiates payments."),
			q("A4", A, "Online banking access is restricted by role and reviewed at least quarterly."),
			q("A5", A, "Staff are trained to recognise payment fraud, phishing and fake invoice attempts."),
			q("A6", A, "Petty cash and company cards have documented limits and are checked without notice."),
		}},
		{ID: B, Title: "Internal Controls", Questions: []model.Question{
			q("B1", B, "A delegation of authority matrix defines who may approve which transactions."),
			q("B2", B, "Purchasing, receiving, recording and paying are handled by different people."),
			q("B3", B, "Journal entries are approved by someone other than the person who prepared them."),
			q("B4", B, "Invoices are matched to purchase orders and goods receipts before payment."),
			q("B5", B, "Key finance policies and procedures are written down and kept current."),
			q("B6", B, "Control exceptions are logged, investigated and closed out."),
		}},
		{ID: C, Title: "Cash Flow", Questions: []model.Question{
			q("C1", C, "A rolling 13-week cash flow forecast is maintained and updated weekly."),
			q("C2", C, "Overdue receivables are chased on a defined collections schedule."),
			q("C3", C, "Supplier payment runs are scheduled to match agreed payment terms."),
			q("C4", C, "A minimum cash buffer or facility headroom is defined and monitored."),
			q("C5", C, "Forecast cash is compared with actual cash movements every period."),
			q("C6", C, "Working capital drivers such as debtor days and creditor days are tracked."),
		}},
		{ID: D, Title: "Reporting", Questions: []model.Question{
			q("D1", D, "Monthly management accounts are closed within ten working days."),
			q("D2", D, "Balance sheet accounts are reconciled monthly with evidence retained."),
			q("D3", D, "Reports compare actuals with budget and explain significant variances."),
			q("D4", D, "Key performance indicators are defined, owned and reported consistently."),
			q("D5", D, "Leadership uses financial reports to make and record decisions."),
			q("D6", D, "The year-end audit or review completes without material adjustments."),
		}},
		{ID: E, Title: "Finance Team", Questions: []model.Question{
			q("E1", E, "Finance roles and responsibilities are documented and understood."),
			q("E2", E, "Every critical finance task has a trained backup person."),
			q("E3", E, "The team has the technical skills the current reporting needs require."),
			q("E4", E, "Month-end workload is manageable without recurring overtime."),
			q("E5", E, "Finance staff receive ongoing professional development."),
			q("E6", E, "The finance lead takes part in strategic and operational decisions."),
		}},
		{ID: F, Title: "Systems & Data", Questions: []model.Question{
			q("F1", F, "The accounting or ERP system is configured to support current business needs."),
			q("F2", F, "Bank feeds and integrations remove most manual data entry."),
			q("F3", F, "Access to finance systems follows least privilege and is reviewed regularly."),
			q("F4", F, "Financial data is backed up and a restore has been tested."),
			q("F5", F, "Customer, supplier and chart of accounts master data is governed and clean."),
			q("F6", F, "Spreadsheets used in key processes are controlled and version-managed."),
		}},
	}
}

func defaultActions() map[string]string {
	return map[string]string{
		"A1": "Introduce dual authorisation in your banking platform for every payment above an agreed threshold.",
		"A2": "Adopt a written call-back procedure for any bank detail change, using contact details already on file.",
		"A3": "Assign bank reconciliations to someone who cannot initiate or approve payments.",
		"A4": "Map banking users to roles, remove unused access and schedule a quarterly access review.",
		"A5": "Run short fraud-awareness sessions covering invoice redirection and executive impersonation.",
		"A6": "Set written limits for petty cash and cards and perform unannounced counts.",
		"B1": "Document a delegation of authority matrix and align system approval limits to it.",
		"B2": "Split incompatible duties or add compensating reviews where the team is too small to separate them.",
		"B3": "Require independent approval of manual journals and keep evidence of the review.",
		"B4": "Enforce three-way matching before invoices are released for payment.",
		"B5": "Write down core finance procedures and assign an owner to keep each one current.",
		"B6": "Keep an exceptions log with owners and due dates and review it monthly.",
		"C1": "Build a 13-week cash forecast and refresh it weekly with actual receipts and payments.",
		"C2": "Agree a collections calendar with escalation steps for overdue customers.",
		"C3": "Schedule payment runs around negotiated terms instead of paying on receipt.",
		"C4": "Define a minimum cash buffer and an early-warning trigger tied to your forecast.",
		"C5": "Compare forecast with actual cash each period and investigate large differences.",
		"C6": "Track debtor days, creditor days and inventory days on a monthly dashboard.",
		"D1": "Create a close calendar with task owners to bring month-end inside ten working days.",
		"D2": "Reconcile every balance sheet account monthly and file the supporting evidence.",
		"D3": "Add budget comparisons and short variance commentary to management reports.",
		"D4": "Agree a concise KPI set with named owners and consistent definitions.",
		"D5": "Put financial reports on the leadership agenda and minute the decisions taken.",
		"D6": "Run a pre-audit review of judgemental balances to avoid late adjustments.",
		"E1": "Write role descriptions for each finance position and share them with the team.",
		"E2": "Cross-train a backup for payroll, payments and month-end close.",
		"E3": "Identify skill gaps against reporting needs and plan targeted training or hires.",
		"E4": "Rebalance month-end tasks or automate recurring work to remove chronic overtime.",
		"E5": "Give each team member a yearly development plan with funded learning time.",
		"E6": "Include the finance lead in strategic planning and major operational decisions.",
		"F1": "Review ERP configuration against current processes and close the gaps.",
		"F2": "Connect bank feeds and key integrations to cut manual keying.",
		"F3": "Apply least-privilege roles in finance systems and review access every quarter.",
		"F4": "Automate backups of financial data and test a restore at least once a year.",
		"F5": "Assign ownership of master data and clean duplicate or inactive records.",
		"F6": "Lock down key spreadsheets with version control, protection and review.",
	}
}
