package prompts

import (
	"fmt"
	"strings"
)

// Comparison icebreakers. The pick is a stable hash of the two product
// names so the same matchup always gets the same joke.
var englishJokes = []string{
	"🎭 Plot twist: %[1]s and %[2]s walk into a bar... The bar runs out of battery! 🔋😂",
	"🤖 Breaking: %[1]s just sent %[2]s a friend request... It got left on \"seen\" 📱💔",
	"🎮 %[1]s vs %[2]s is like Batman vs Superman... Everyone wins except your wallet! 💸",
	"🔥 This comparison is so hot, my processor needs water cooling! 🧊",
	"📱 %[1]s and %[2]s are having a staring contest... Your screen time is the real winner! 👀",
	"⚡ Fun fact: Choosing between these two burns more calories than a gym workout! 💪",
	"🎯 %[1]s or %[2]s? That's like asking me to pick my favorite electron! ⚛️",
	"💭 %[1]s dreams of electric sheep, %[2]s counts binary sheep! 🐑",
	"🏆 Winner of this battle? Your Instagram feed! 📸",
	"🎭 Shakespeare would write: \"To %[1]s or to %[2]s, that is the question!\" 📚",
	"🔮 My crystal ball says... you'll be happy either way! ✨",
	"🎵 %[1]s and %[2]s should start a band called \"The Processors\"! 🎸",
	"🍕 This choice is harder than picking pizza toppings! 🤔",
	"🦸 %[1]s has superpowers, but %[2]s has a cape! Who wins? You do! 🦸‍♂️",
}

var arabicJokes = []string{
	"😂 %[1]s و %[2]s دخلوا مقهى... القهوة خلصت البطارية! ☕🔋",
	"🎭 الحقيقة: الاثنين حلوين بس محفظتك راح تبكي! 💸😭",
	"🔥 المقارنة دي حارة لدرجة إن المكيف طلب إجازة! ❄️",
	"📱 %[1]s قال ل %[2]s: \"أنت مين؟\" رد عليه: \"أنا المستقبل!\" 🚀",
	"⚡ تدري وش الفرق بينهم؟ واحد يخليك سعيد والثاني يخليك سعيد برضو! 😄",
	"🎯 الخيار صعب زي اختيار أفضل كباب بالرياض! 🥙",
	"💭 %[1]s و %[2]s صاروا أصحاب على الواي فاي! 📶",
	"🏆 الفائز الحقيقي؟ السناب شات حقك! 👻",
	"🔮 الكرة البلورية تقول... بتكون مبسوط بأي واحد! ✨",
	"🎵 %[1]s و %[2]s بيسوون فرقة اسمها \"المعالجات\"! 🎸",
	"🚗 زي تختار بين فيراري ولامبورغيني... بس للجيب! 🏎️",
}

var englishEndings = []string{
	"🎉 Remember: Life's too short for boring phones!",
	"🚀 May the specs be with you!",
	"💫 Choose wisely, young padawan!",
	"🌟 Stay techy, stay awesome!",
	"🎯 Mission accomplished! Now go shopping!",
}

var arabicEndings = []string{
	"🎉 تذكر: الحياة قصيرة عشان الجوالات المملة!",
	"🚀 القوة معك يا بطل!",
	"🌟 خلك تقني، خلك رهيب!",
	"🎯 المهمة انتهت! يالله للتسوق!",
}

// TechJoke picks a deterministic icebreaker for a product matchup.
func TechJoke(product1, product2, language string) string {
	jokes := englishJokes
	if language == "ar" {
		jokes = arabicJokes
	}
	joke := jokes[nameHash(product1+product2)%len(jokes)]
	if !strings.Contains(joke, "%[") {
		// Some jokes stand on their own without naming the products.
		return joke
	}
	return fmt.Sprintf(joke, product1, product2)
}

// FunEnding picks a deterministic sign-off line.
func FunEnding(seed, language string) string {
	endings := englishEndings
	if language == "ar" {
		endings = arabicEndings
	}
	return endings[nameHash(seed)%len(endings)]
}

func nameHash(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum
}
