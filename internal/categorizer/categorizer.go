// Package categorizer assigns category and payment-type labels to imported
// bank statement rows based on merchant description patterns.
package categorizer

import "regexp"

// DefaultCategory is assigned when no rule matches a merchant description.
const DefaultCategory = "Uncategorized"

// PaymentType classifies how a transaction was paid.
type PaymentType string

const (
	PaymentDebit  PaymentType = "debit"
	PaymentCredit PaymentType = "credit"
	PaymentCash   PaymentType = "cash"
)

type categoryRule struct {
	pattern  *regexp.Regexp
	category string
}

type paymentTypeRule struct {
	pattern     *regexp.Regexp
	paymentType PaymentType
}

var categoryRules = []categoryRule{
	// Food and groceries
	{regexp.MustCompile(`(?i)WOOLIES|ALDI|COLES|RITCHIES|BUTCHERS?|HENRY'S|TULLY'S|FRUIT AND VEG`), "Groceries"},
	{regexp.MustCompile(`(?i)SUSHI|CATERING|KENNY'S|CAFE|RESTAURANT|FOOD|BAKERY`), "Food and Drink"},
	{regexp.MustCompile(`(?i)LIQUOR|LIQUORLAND|DAN MURPHY|BWS`), "Alcohol"},

	// Transport and auto
	{regexp.MustCompile(`(?i)RACV|AUTOPAY|FUEL|PETROL|SERVICE|PARKING|TOLL`), "Transport"},

	// Utilities and services
	{regexp.MustCompile(`(?i)SUPERLOOP|TELSTRA|OPTUS|VODAFONE|NBN|INTERNET|MOBILE`), "Internet and Phone"},
	{regexp.MustCompile(`(?i)INSURANCE|MEDIBANK|BUPA|HCF|NIB`), "Insurance"},
	{regexp.MustCompile(`(?i)ELECTRICITY|GAS|WATER|ORIGIN|AGL|ENERGY`), "Utilities"},

	// Shopping and retail
	{regexp.MustCompile(`(?i)TARGET|KMART|BIG W|MYER|DAVID JONES|CLOTHING|FOOTWEAR`), "Clothing and Footwear"},
	{regexp.MustCompile(`(?i)BUNNINGS|HARDWARE|GARDEN|PLANTS`), "Garden and Hardware"},

	// Education and professional
	{regexp.MustCompile(`(?i)SCHOOL|EDUCATION|COURSE|TRAINING`), "Education"},
	{regexp.MustCompile(`(?i)LINKEDIN|MICROSOFT|ADOBE|SOFTWARE|LICENSE`), "Software and Subscriptions"},

	// Financial
	{regexp.MustCompile(`(?i)LOAN|MORTGAGE`), "Mortgage Payments"},
	{regexp.MustCompile(`(?i)CREDIT CARD|CARD PAYMENT|AMEX|MASTERCARD|VISA`), "Credit Card Payment"},
	{regexp.MustCompile(`(?i)RENT|RENTAL`), "Rent"},
	{regexp.MustCompile(`(?i)SALARY|WAGE|PAYROLL|COMMISSION`), "Salary"},

	// Entertainment
	{regexp.MustCompile(`(?i)NETFLIX|SPOTIFY|DISNEY|AMAZON|PRIME|STREAMING`), "Entertainment"},
	{regexp.MustCompile(`(?i)CINEMA|MOVIE|THEATRE|CONCERT|EVENT|TICKET`), "Entertainment"},

	// Health and medical
	{regexp.MustCompile(`(?i)PHARMACY|CHEMIST|MEDICAL|DENTAL|DOCTOR|HOSPITAL`), "Health"},
	{regexp.MustCompile(`(?i)GYM|FITNESS|SPORT|EXERCISE`), "Health and Fitness"},
}

var paymentTypeRules = []paymentTypeRule{
	{regexp.MustCompile(`(?i)AMEX|AMERICAN EXPRESS|CREDIT CARD|MASTERCARD|VISA|DINERS|CC PMT|CREDITCARD`), PaymentCredit},
	{regexp.MustCompile(`(?i)ATM|CASH OUT|WITHDRAWAL|MONEY EXCHANGE|CASH ADVANCE`), PaymentCash},
	{regexp.MustCompile(`(?i)EFTPOS|DEBIT|DIRECT DEBIT|BANK TRANSFER|BPAY|AUTOPAY|PAYPAL`), PaymentDebit},
}

// Categorize returns the category name for a merchant description. Rules are
// evaluated in order and the first match wins. An empty or unmatched
// description yields DefaultCategory.
func Categorize(merchant string) string {
	if merchant == "" {
		return DefaultCategory
	}
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(merchant) {
			return rule.category
		}
	}
	return DefaultCategory
}

// DetectPaymentType infers the payment type from a merchant description and
// optional free-text description. Falls back to debit when nothing matches.
func DetectPaymentType(merchant, description string) PaymentType {
	text := merchant
	if description != "" {
		if text != "" {
			text += " "
		}
		text += description
	}
	if text == "" {
		return PaymentDebit
	}
	for _, rule := range paymentTypeRules {
		if rule.pattern.MatchString(text) {
			return rule.paymentType
		}
	}
	return PaymentDebit
}
