package i18n

import "github.com/nutrimcp/backend/internal/domain"

// Message keys used outside this package
const (
	KeyErrorAPI       = "error.api"
	KeyErrorNotFound  = "error.notFound"
	KeySearchNoResult = "search.noResults"

	KeyToolSearchFoods       = "tool.searchFoods.description"
	KeyToolGetFoodDetails    = "tool.getFoodDetails.description"
	KeyToolRecipeNutrition   = "tool.calculateRecipeNutrition.description"
	KeyToolNutritionalValues = "tool.getNutritionalValues.description"
	KeyToolCompare           = "tool.compareNutritionalValues.description"
	KeyToolIngredients       = "tool.getIngredients.description"
	KeyToolComponentSets     = "tool.listComponentSets.description"
	KeyToolSetLanguage       = "tool.setLanguagePreference.description"
	KeyToolDetectLanguage    = "tool.detectLanguage.description"
	KeyLanguagePreferenceSet = "language.preferenceSet"
)

type entry map[domain.Language]string

var translations = map[string]entry{
	KeyErrorAPI: {
		domain.LanguageEnglish: "Swiss Nutrition Database API error",
		domain.LanguageGerman:  "Schweizer Nährwertdatenbank API-Fehler",
		domain.LanguageFrench:  "Erreur de l'API de la base de données suisse sur les nutriments",
		domain.LanguageItalian: "Errore dell'API della banca dati svizzera dei nutrienti",
	},
	KeyErrorNotFound: {
		domain.LanguageEnglish: "Food not found",
		domain.LanguageGerman:  "Lebensmittel nicht gefunden",
		domain.LanguageFrench:  "Aliment non trouvé",
		domain.LanguageItalian: "Cibo non trovato",
	},
	KeySearchNoResult: {
		domain.LanguageEnglish: "No foods found matching your search criteria",
		domain.LanguageGerman:  "Keine Lebensmittel gefunden, die Ihren Suchkriterien entsprechen",
		domain.LanguageFrench:  "Aucun aliment correspondant à vos critères de recherche n'a été trouvé",
		domain.LanguageItalian: "Nessun cibo trovato corrispondente ai tuoi criteri di ricerca",
	},

	"category.fruits": {
		domain.LanguageEnglish: "Fruits",
		domain.LanguageGerman:  "Früchte",
		domain.LanguageFrench:  "Fruits",
		domain.LanguageItalian: "Frutta",
	},
	"category.vegetables": {
		domain.LanguageEnglish: "Vegetables",
		domain.LanguageGerman:  "Gemüse",
		domain.LanguageFrench:  "Légumes",
		domain.LanguageItalian: "Verdura",
	},
	"category.dairy": {
		domain.LanguageEnglish: "Dairy products",
		domain.LanguageGerman:  "Milchprodukte",
		domain.LanguageFrench:  "Produits laitiers",
		domain.LanguageItalian: "Latticini",
	},
	"category.meat": {
		domain.LanguageEnglish: "Meat",
		domain.LanguageGerman:  "Fleisch",
		domain.LanguageFrench:  "Viande",
		domain.LanguageItalian: "Carne",
	},
	"category.fish": {
		domain.LanguageEnglish: "Fish",
		domain.LanguageGerman:  "Fisch",
		domain.LanguageFrench:  "Poisson",
		domain.LanguageItalian: "Pesce",
	},
	"category.grains": {
		domain.LanguageEnglish: "Grains and cereals",
		domain.LanguageGerman:  "Getreide und Cerealien",
		domain.LanguageFrench:  "Grains et céréales",
		domain.LanguageItalian: "Grani e cereali",
	},

	"nutrient.energy": {
		domain.LanguageEnglish: "Energy",
		domain.LanguageGerman:  "Energie",
		domain.LanguageFrench:  "Énergie",
		domain.LanguageItalian: "Energia",
	},
	"nutrient.protein": {
		domain.LanguageEnglish: "Protein",
		domain.LanguageGerman:  "Protein",
		domain.LanguageFrench:  "Protéines",
		domain.LanguageItalian: "Proteine",
	},
	"nutrient.fat": {
		domain.LanguageEnglish: "Fat",
		domain.LanguageGerman:  "Fett",
		domain.LanguageFrench:  "Matières grasses",
		domain.LanguageItalian: "Grassi",
	},
	"nutrient.carbohydrates": {
		domain.LanguageEnglish: "Carbohydrates",
		domain.LanguageGerman:  "Kohlenhydrate",
		domain.LanguageFrench:  "Glucides",
		domain.LanguageItalian: "Carboidrati",
	},
	"nutrient.fiber": {
		domain.LanguageEnglish: "Dietary fiber",
		domain.LanguageGerman:  "Ballaststoffe",
		domain.LanguageFrench:  "Fibres alimentaires",
		domain.LanguageItalian: "Fibre alimentari",
	},
	"nutrient.sodium": {
		domain.LanguageEnglish: "Sodium",
		domain.LanguageGerman:  "Natrium",
		domain.LanguageFrench:  "Sodium",
		domain.LanguageItalian: "Sodio",
	},

	// Unit keys are looked up as "unit." + lower-cased unit string.
	"unit.gram": {
		domain.LanguageEnglish: "gram",
		domain.LanguageGerman:  "Gramm",
		domain.LanguageFrench:  "gramme",
		domain.LanguageItalian: "grammo",
	},
	"unit.kilogram": {
		domain.LanguageEnglish: "kilogram",
		domain.LanguageGerman:  "Kilogramm",
		domain.LanguageFrench:  "kilogramme",
		domain.LanguageItalian: "chilogrammo",
	},
	"unit.milligram": {
		domain.LanguageEnglish: "milligram",
		domain.LanguageGerman:  "Milligramm",
		domain.LanguageFrench:  "milligramme",
		domain.LanguageItalian: "milligrammo",
	},
	"unit.microgram": {
		domain.LanguageEnglish: "microgram",
		domain.LanguageGerman:  "Mikrogramm",
		domain.LanguageFrench:  "microgramme",
		domain.LanguageItalian: "microgrammo",
	},
	"unit.kilocalorie": {
		domain.LanguageEnglish: "kcal",
		domain.LanguageGerman:  "kcal",
		domain.LanguageFrench:  "kcal",
		domain.LanguageItalian: "kcal",
	},
	"unit.kilojoule": {
		domain.LanguageEnglish: "kJ",
		domain.LanguageGerman:  "kJ",
		domain.LanguageFrench:  "kJ",
		domain.LanguageItalian: "kJ",
	},

	KeyToolSearchFoods: {
		domain.LanguageEnglish: "Search for foods in the Swiss Nutrition Database",
		domain.LanguageGerman:  "Suche nach Lebensmitteln in der Schweizer Nährwertdatenbank",
		domain.LanguageFrench:  "Recherche d'aliments dans la base de données suisse sur les nutriments",
		domain.LanguageItalian: "Cerca alimenti nella banca dati svizzera dei nutrienti",
	},
	KeyToolGetFoodDetails: {
		domain.LanguageEnglish: "Get detailed information about a specific food",
		domain.LanguageGerman:  "Detaillierte Informationen zu einem bestimmten Lebensmittel erhalten",
		domain.LanguageFrench:  "Obtenir des informations détaillées sur un aliment spécifique",
		domain.LanguageItalian: "Ottieni informazioni dettagliate su un alimento specifico",
	},
	KeyToolRecipeNutrition: {
		domain.LanguageEnglish: "Calculate nutritional values for a recipe",
		domain.LanguageGerman:  "Nährwerte für ein Rezept berechnen",
		domain.LanguageFrench:  "Calculer les valeurs nutritionnelles d'une recette",
		domain.LanguageItalian: "Calcola i valori nutrizionali per una ricetta",
	},
	KeyToolNutritionalValues: {
		domain.LanguageEnglish: "Get nutritional values for a specific food",
		domain.LanguageGerman:  "Nährwerte für ein bestimmtes Lebensmittel abrufen",
		domain.LanguageFrench:  "Obtenir les valeurs nutritionnelles d'un aliment spécifique",
		domain.LanguageItalian: "Ottieni i valori nutrizionali di un alimento specifico",
	},
	KeyToolCompare: {
		domain.LanguageEnglish: "Compare the nutritional values of several foods",
		domain.LanguageGerman:  "Nährwerte mehrerer Lebensmittel vergleichen",
		domain.LanguageFrench:  "Comparer les valeurs nutritionnelles de plusieurs aliments",
		domain.LanguageItalian: "Confronta i valori nutrizionali di più alimenti",
	},
	KeyToolIngredients: {
		domain.LanguageEnglish: "Get the ingredients of a recipe",
		domain.LanguageGerman:  "Zutaten eines Rezepts abrufen",
		domain.LanguageFrench:  "Obtenir les ingrédients d'une recette",
		domain.LanguageItalian: "Ottieni gli ingredienti di una ricetta",
	},
	KeyToolComponentSets: {
		domain.LanguageEnglish: "List the available component sets",
		domain.LanguageGerman:  "Verfügbare Komponentengruppen auflisten",
		domain.LanguageFrench:  "Lister les groupes de composants disponibles",
		domain.LanguageItalian: "Elenca i gruppi di componenti disponibili",
	},
	KeyToolSetLanguage: {
		domain.LanguageEnglish: "Set the preferred language of a user",
		domain.LanguageGerman:  "Bevorzugte Sprache eines Benutzers festlegen",
		domain.LanguageFrench:  "Définir la langue préférée d'un utilisateur",
		domain.LanguageItalian: "Imposta la lingua preferita di un utente",
	},
	KeyToolDetectLanguage: {
		domain.LanguageEnglish: "Detect the language of a food related text",
		domain.LanguageGerman:  "Sprache eines Textes über Lebensmittel erkennen",
		domain.LanguageFrench:  "Détecter la langue d'un texte sur les aliments",
		domain.LanguageItalian: "Rileva la lingua di un testo sugli alimenti",
	},
	KeyLanguagePreferenceSet: {
		domain.LanguageEnglish: "Language preference saved",
		domain.LanguageGerman:  "Spracheinstellung gespeichert",
		domain.LanguageFrench:  "Préférence de langue enregistrée",
		domain.LanguageItalian: "Preferenza di lingua salvata",
	},
}
