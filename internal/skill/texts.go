package skill

// Тексты навыка: персона Aura говорит по-итальянски.
const (
	Persona = "Sei Aura, un'assistente femminile chiara, utile e gentile. " +
		"Rispondi sempre in italiano, con tono naturale e conversazionale."

	TextGreeting     = "Ciao, sono Aura. Come posso aiutarti?"
	TextFarewell     = "Va bene, a presto!"
	TextHelp         = "Puoi parlarmi come ad una persona. Fammi una domanda, chiedimi un consiglio, oppure chiedimi di spiegarti qualcosa."
	TextUnsupported  = "Ho ricevuto la tua richiesta, ma non ho ancora imparato a gestire questo tipo di domanda."
	TextSessionEnded = "Sessione terminata."
	TextUnknown      = "Non ho capito bene la tua richiesta."
	TextMalformed    = "Mi dispiace, non ho capito la richiesta."
	TextApology      = "Mi dispiace, c'è stato un errore interno con il motore di intelligenza artificiale."

	// PlaceholderUtterance подставляется, когда платформа не передала слова пользователя.
	PlaceholderUtterance = "L'utente ha detto qualcosa, ma non riesco a leggere le parole precise."
)
