// Package specialty holds the ordered catalog of medical specialties and the
// first-match keyword classifier that routes queries to them.
package specialty

import "github.com/sells-group/billing-assistant/internal/model"

const siteBase = "https://billingparadise.com"

// Table is an ordered, read-only catalog of specialties. Declaration order
// decides ties when keywords overlap.
type Table []model.Specialty

func entry(key, slug, name string, keywords ...string) model.Specialty {
	return model.Specialty{
		Key:      key,
		Name:     name,
		URL:      siteBase + "/" + slug,
		Keywords: keywords,
	}
}

// DefaultTable returns the built-in specialty catalog. Each call returns a
// fresh copy so callers cannot mutate the shared declaration.
func DefaultTable() Table {
	return Table{
		entry("cardiology", "cardiology-billing-services", "Cardiology Billing Services",
			"cardiology", "cardiac", "heart", "cardiovascular", "cardiologist"),
		entry("orthopedics", "orthopedic-billing-services", "Orthopedic Billing Services",
			"orthopedic", "orthopedics", "ortho", "bone", "joint", "spine", "musculoskeletal"),
		entry("radiology", "radiology-billing-services", "Radiology Billing Services",
			"radiology", "radiologist", "imaging", "x-ray", "mri", "ct scan", "ultrasound"),
		entry("dermatology", "dermatology-billing-services", "Dermatology Billing Services",
			"dermatology", "dermatologist", "skin", "derma"),
		entry("neurology", "neurology-billing-services", "Neurology Billing Services",
			"neurology", "neurologist", "brain", "neurological", "neuro"),
		entry("gastroenterology", "gastroenterology-billing-services", "Gastroenterology Billing Services",
			"gastroenterology", "gastro", "gi", "digestive", "endoscopy"),
		entry("oncology", "oncology-billing-services", "Oncology Billing Services",
			"oncology", "oncologist", "cancer", "chemotherapy", "radiation therapy"),
		entry("pediatrics", "pediatric-billing-services", "Pediatric Billing Services",
			"pediatric", "pediatrics", "children", "child", "pediatrician"),
		entry("obstetrics-gynecology", "obgyn-billing-services", "OB/GYN Billing Services",
			"obgyn", "ob/gyn", "obstetrics", "gynecology", "womens health", "pregnancy"),
		entry("psychiatry", "psychiatry-billing-services", "Psychiatry Billing Services",
			"psychiatry", "psychiatrist", "mental health", "behavioral health"),
		entry("ophthalmology", "ophthalmology-billing-services", "Ophthalmology Billing Services",
			"ophthalmology", "ophthalmologist", "eye", "vision", "optometry"),
		entry("urology", "urology-billing-services", "Urology Billing Services",
			"urology", "urologist", "urological", "kidney", "bladder"),
		entry("pulmonology", "pulmonology-billing-services", "Pulmonology Billing Services",
			"pulmonology", "pulmonologist", "lung", "respiratory", "pulmonary"),
		entry("endocrinology", "endocrinology-billing-services", "Endocrinology Billing Services",
			"endocrinology", "endocrinologist", "diabetes", "thyroid", "hormone"),
		entry("nephrology", "nephrology-billing-services", "Nephrology Billing Services",
			"nephrology", "nephrologist", "kidney", "dialysis", "renal"),
		entry("rheumatology", "rheumatology-billing-services", "Rheumatology Billing Services",
			"rheumatology", "rheumatologist", "arthritis", "autoimmune"),
		entry("anesthesiology", "anesthesiology-billing-services", "Anesthesiology Billing Services",
			"anesthesiology", "anesthesiologist", "anesthesia", "pain management"),
		entry("pathology", "pathology-billing-services", "Pathology Billing Services",
			"pathology", "pathologist", "laboratory", "lab"),
		entry("emergency-medicine", "emergency-medicine-billing-services", "Emergency Medicine Billing Services",
			"emergency", "er", "emergency room", "urgent care"),
		entry("family-medicine", "family-medicine-billing-services", "Family Medicine Billing Services",
			"family medicine", "family practice", "primary care", "general practice"),
		entry("internal-medicine", "internal-medicine-billing-services", "Internal Medicine Billing Services",
			"internal medicine", "internist", "general medicine"),
		entry("plastic-surgery", "plastic-surgery-billing-services", "Plastic Surgery Billing Services",
			"plastic surgery", "cosmetic surgery", "reconstructive surgery"),
		entry("general-surgery", "general-surgery-billing-services", "General Surgery Billing Services",
			"general surgery", "surgeon", "surgical"),
		entry("otolaryngology", "ent-billing-services", "ENT Billing Services",
			"ent", "otolaryngology", "ear nose throat", "otolaryngologist"),
		entry("allergy-immunology", "allergy-immunology-billing-services", "Allergy & Immunology Billing Services",
			"allergy", "immunology", "allergist", "immunologist"),
		entry("infectious-disease", "infectious-disease-billing-services", "Infectious Disease Billing Services",
			"infectious disease", "infection", "infectious"),
		entry("physical-medicine", "physical-medicine-billing-services", "Physical Medicine & Rehabilitation Billing Services",
			"physical medicine", "rehabilitation", "physiatry", "pm&r"),
		entry("hematology", "hematology-billing-services", "Hematology Billing Services",
			"hematology", "hematologist", "blood", "blood disorder"),
		entry("podiatry", "podiatry-billing-services", "Podiatry Billing Services",
			"podiatry", "podiatrist", "foot", "ankle"),
		entry("chiropractic", "chiropractic-billing-services", "Chiropractic Billing Services",
			"chiropractic", "chiropractor", "spinal adjustment"),
	}
}
