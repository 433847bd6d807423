package mapping

// Synonyms maps a canonical concept to the normalized label variants that
// denote the same thing. The canonical concept itself also counts as a
// variant. Keys and variants must already be in Normalize form.
var Synonyms = map[string][]string{
	"email":     {"emailaddress", "mail", "emailid", "email1", "workemail"},
	"phone":     {"phonenumber", "telephone", "tel", "workphone", "phoneno"},
	"mobile":    {"mobilephone", "mobilenumber", "cell", "cellphone"},
	"fax":       {"faxnumber", "faxno"},
	"firstname": {"fname", "givenname", "first", "forename"},
	"lastname":  {"lname", "surname", "familyname", "last"},
	"company":   {"companyname", "organization", "organisation", "employer", "business"},
	"title":     {"jobtitle", "position", "role"},
	"address":   {"street", "streetaddress", "address1", "addressline1"},
	"city":      {"town", "locality"},
	"state":     {"province", "region", "stateprovince"},
	"zip":       {"zipcode", "postalcode", "postcode", "postal"},
	"country":   {"countrycode", "nation"},
	"website":   {"url", "web", "homepage", "site"},
	"notes":     {"note", "comments", "comment", "description", "remarks"},
}

// conceptIndex is the reverse lookup: normalized variant -> concept.
var conceptIndex = buildConceptIndex(Synonyms)

func buildConceptIndex(table map[string][]string) map[string]string {
	index := make(map[string]string, len(table)*4)
	for concept, variants := range table {
		index[concept] = concept
		for _, v := range variants {
			index[v] = concept
		}
	}
	return index
}

// SynonymScore returns ScoreSynonym when both normalized keys belong to
// the same synonym concept, zero otherwise.
func SynonymScore(a, b string) float64 {
	ca, ok := conceptIndex[a]
	if !ok {
		return 0
	}
	cb, ok := conceptIndex[b]
	if !ok || ca != cb {
		return 0
	}
	return ScoreSynonym
}
