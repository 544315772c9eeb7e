package fakedata

// Segment age thresholds, highest first.
const (
	seniorAge      = 65
	establishedAge = 45
	primeAge       = 30
)

// Customer value ranges.
const (
	minAge           = 18
	maxAge           = 80
	maxTenureDays    = 10*365 + 2
	transactionYears = 2
	maxAmountCents   = 500_000
	accountsPerCust  = 3
)

var firstNames = []string{
	"Liam", "Olivia", "Noah", "Emma", "William", "Charlotte", "Benjamin", "Amelia",
	"Lucas", "Sophia", "Ethan", "Chloe", "Jacob", "Emily", "Owen", "Ava",
	"Nathan", "Maya", "Samuel", "Zoe", "Gabriel", "Léa", "Félix", "Aanya",
	"Arjun", "Mei", "Wei", "Fatima", "Omar", "Priya",
}

var lastNames = []string{
	"Smith", "Brown", "Tremblay", "Martin", "Roy", "Wilson", "MacDonald", "Gagnon",
	"Johnson", "Taylor", "Campbell", "Anderson", "Leblanc", "Lee", "Côté", "Bouchard",
	"Gauthier", "Morin", "Lavoie", "Fortin", "Singh", "Wong", "Chen", "Patel",
	"Nguyen", "Kim", "Thompson", "White", "Clark", "Young",
}

var emailDomains = []string{"example.com", "example.ca", "mail.example.org"}

var streetNames = []string{
	"Maple", "Oak", "Pine", "Cedar", "Elm", "Birch", "King", "Queen",
	"Main", "Church", "Victoria", "Wellington", "Lakeshore", "Dundas", "Yonge",
}

var streetSuffixes = []string{"St", "Ave", "Rd", "Blvd", "Cres", "Dr", "Way"}

type cityProvince struct {
	city     string
	province string
	area     []int
	postal   byte
}

var cities = []cityProvince{
	{"Toronto", "ON", []int{416, 647, 437}, 'M'},
	{"Ottawa", "ON", []int{613, 343}, 'K'},
	{"Montréal", "QC", []int{514, 438}, 'H'},
	{"Québec", "QC", []int{418, 581}, 'G'},
	{"Vancouver", "BC", []int{604, 778}, 'V'},
	{"Calgary", "AB", []int{403, 587}, 'T'},
	{"Edmonton", "AB", []int{780, 587}, 'T'},
	{"Winnipeg", "MB", []int{204, 431}, 'R'},
	{"Regina", "SK", []int{306, 639}, 'S'},
	{"Halifax", "NS", []int{902, 782}, 'B'},
	{"Fredericton", "NB", []int{506}, 'E'},
	{"St. John's", "NL", []int{709}, 'A'},
	{"Charlottetown", "PE", []int{902, 782}, 'C'},
}

var accountStatuses = []string{"Active", "Inactive", "Suspended"}

var transactionTypes = []string{"Debit", "Credit", "Transfer", "Payment"}

var merchantCategories = []string{"Grocery", "Gas", "Restaurant", "Retail", "Healthcare", "Entertainment"}

var channels = []string{"ATM", "Online", "Branch", "Mobile"}

var companies = []string{
	"Northwind Grocers", "Maple Leaf Fuel", "Harbourfront Bistro", "Prairie Outfitters",
	"Aurora Health Clinic", "Cineplex Local", "True North Hardware", "Boreal Pharmacy",
	"Laurentian Market", "Pacific Coffee Co", "Atlantic Seafood", "Rocky Mountain Sports",
}

// postalLetters excludes D, F, I, O, Q and U, which Canadian postal codes never use.
const postalLetters = "ABCEGHJKLMNPRSTVWXYZ"
