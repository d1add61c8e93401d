package database

const createShopsTable = `
CREATE TABLE IF NOT EXISTS shops (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	owner_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	mobile TEXT NOT NULL,
	address TEXT,
	city TEXT,
	state TEXT,
	pincode TEXT,
	gst_number TEXT,
	license_number TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

const createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	shop_id INTEGER NOT NULL REFERENCES shops(id),
	name TEXT NOT NULL,
	mobile TEXT NOT NULL,
	alternate_phone TEXT,
	address TEXT,
	city TEXT,
	pincode TEXT,
	id_proof_type TEXT,
	id_proof_number TEXT,
	photo TEXT,
	notes TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

const createLoansTable = `
CREATE TABLE IF NOT EXISTS loans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	shop_id INTEGER NOT NULL REFERENCES shops(id),
	customer_id INTEGER NOT NULL REFERENCES customers(id),
	loan_number TEXT NOT NULL UNIQUE,
	ornament_type TEXT NOT NULL,
	gross_weight_grams REAL NOT NULL,
	stone_weight_grams REAL NOT NULL DEFAULT 0,
	net_weight_grams REAL NOT NULL,
	purity TEXT NOT NULL,
	gold_rate_per_gram REAL NOT NULL,
	gold_value_paise INTEGER NOT NULL,
	principal_amount_paise INTEGER NOT NULL,
	interest_rate_percent REAL NOT NULL,
	tenure_months INTEGER NOT NULL,
	start_date INTEGER NOT NULL,
	due_date INTEGER NOT NULL,
	outstanding_principal_paise INTEGER NOT NULL,
	outstanding_interest_paise INTEGER NOT NULL DEFAULT 0,
	total_interest_paid_paise INTEGER NOT NULL DEFAULT 0,
	total_principal_paid_paise INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'closed')),
	closed_at INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

const createPaymentsTable = `
CREATE TABLE IF NOT EXISTS payments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	shop_id INTEGER NOT NULL REFERENCES shops(id),
	loan_id INTEGER NOT NULL REFERENCES loans(id),
	payment_number TEXT NOT NULL UNIQUE,
	amount_paise INTEGER NOT NULL,
	interest_paid_paise INTEGER NOT NULL DEFAULT 0,
	principal_paid_paise INTEGER NOT NULL DEFAULT 0,
	payment_mode TEXT NOT NULL CHECK (payment_mode IN ('cash', 'upi', 'bank_transfer', 'cheque')),
	payment_reference TEXT,
	payment_date INTEGER NOT NULL,
	outstanding_principal_after_paise INTEGER NOT NULL,
	outstanding_interest_after_paise INTEGER NOT NULL,
	notes TEXT,
	created_at INTEGER NOT NULL
)`

const createAuditLogsTable = `
CREATE TABLE IF NOT EXISTS audit_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	shop_id INTEGER NOT NULL REFERENCES shops(id),
	action TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id INTEGER NOT NULL,
	details TEXT,
	created_at INTEGER NOT NULL
)`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_customers_shop ON customers(shop_id);
CREATE INDEX IF NOT EXISTS idx_customers_mobile ON customers(shop_id, mobile);
CREATE INDEX IF NOT EXISTS idx_loans_shop ON loans(shop_id);
CREATE INDEX IF NOT EXISTS idx_loans_customer ON loans(customer_id);
CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(shop_id, status);
CREATE INDEX IF NOT EXISTS idx_payments_shop ON payments(shop_id);
CREATE INDEX IF NOT EXISTS idx_payments_loan ON payments(loan_id);
CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(shop_id, payment_date);
CREATE INDEX IF NOT EXISTS idx_audit_logs_shop ON audit_logs(shop_id, created_at)`
