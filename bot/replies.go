package bot

import (
	"fmt"
	"strings"

	"github.com/ingpabc-ai/citasMB/menu"
)

// Customer-facing texts. Kept in one place so wording changes never touch the
// transition logic.
const (
	replyWelcome = "¡Hola! ¡Estamos felices de tenerte por aquí! 😊\n\n" +
		"Soy un asistente virtual de Spa Milena Bravo y estoy lista para ayudarte a conseguir las uñas de tus sueños.\n\n" +
		"Para darte una mejor atención, ¿me dices tu nombre, por favor?"

	replyAskName = "Para darte una mejor atención, ¿me dices tu nombre, por favor?"

	replyStartOver = "Parece que el menú cambió. ¡Empecemos de nuevo! 🙌"

	replyInvalidChoice = "Por favor, selecciona un número válido de las opciones."

	replyDesignQuestion = "¿Tienes un diseño o una foto de referencia que puedas compartir para que estimemos el tiempo de la cita? " +
		"Responde 'Sí' o 'No'. Si tienes la imagen, también la puedes enviar aquí."

	replyDesignYes = "Excelente 💖 Envíanos la foto o una descripción del diseño aquí."

	replyDesignNo = "No hay problema. 👌\nRevisaremos nuestra agenda para verificar disponibilidad. En breve te propondré opciones por este chat."

	replyDesignReceived = "¡Gracias por la imagen! La recibimos. 💖"

	replyAskDate = "¿Qué día y hora prefieres para tu cita? (ejemplo: 20/09 15:00)"

	replyDateFormat = "Por favor indícame el día y la hora con este formato: 20/09 15:00"

	replyInReview = "Gracias. Revisaremos nuestra agenda para verificar disponibilidad. " +
		"En breve te propondré opciones concretas por este chat. Mientras reviso, por favor espera un momento."

	replyReviewPending = "Tu solicitud está en revisión. En breve te propondré las fechas disponibles. 😊"

	replyYesNo = "Por favor responde 'Sí' para confirmar la agenda o 'No' para reprogramar."

	replyReschedule = "Entendido. Vamos a reprogramar. Por favor espera mientras revisamos otras opciones, o indica qué día/hora prefieres ahora."

	replyHandoff = "¡Gracias por escribirnos! 🙏 Una persona de nuestro equipo te responderá por este chat en breve."

	// ReplyUnavailable is also what the webhook falls back to when handling
	// panics; it is the only text the server layer needs directly.
	ReplyUnavailable = "Lo sentimos, estamos presentando problemas técnicos. Por favor intenta de nuevo en unos minutos. 🙏"

	proposeUsage = "Formato inválido. Usa: PROPUESTA <tel_cliente> <fecha y hora>"
)

func replyConfirmed(dateTime string) string {
	return fmt.Sprintf("✅ Tu cita ha sido agendada exitosamente!\n"+
		"Te esperamos el %s 💖\n"+
		"Gracias por elegir Spa Milena Bravo. Te enviaremos un recordatorio antes de tu cita.", dateTime)
}

func proposalText(dateTime string) string {
	return fmt.Sprintf("Hemos revisado nuestra agenda y proponemos la fecha/hora: %s.\n\n"+
		"Por favor *confirma* con 'Sí' para que agendemos, o responde 'No' para reprogramar.", dateTime)
}

// renderOptions formats a branch for the contact: the branch prompt (or a
// generic one) followed by one numbered line per child.
func renderOptions(n *menu.Node) string {
	header := n.Prompt
	if header == "" {
		header = fmt.Sprintf("Elegiste: %s\nAhora elige una opción:", n.Label)
	}

	var b strings.Builder
	b.WriteString(header)
	for _, opt := range menu.Render(n) {
		b.WriteString("\n")
		b.WriteString(opt.Key)
		b.WriteString("️⃣ ")
		b.WriteString(opt.Label)
	}
	return b.String()
}
