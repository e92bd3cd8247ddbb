package knowledge

// table is the built-in offline question-answer table. Entries are checked
// in declaration order and matching is substring containment, so narrower
// patterns must appear before any broader pattern that contains them.
var table = []QnA{

	// Greetings
	{
		Patterns: []string{"hello", "hi", "namaste", "namaskar", "hey", "hii"},
		Answers: []string{
			"Namaste Boss! Kya seva karun?",
			"Hello Boss! Bol kya chahiye?",
			"Hey Boss! Ready hun!",
		},
	},
	{
		Patterns: []string{"good morning", "subah", "savera"},
		Answers: []string{
			"Good morning Boss! Naya din, naye sapne. Kya plan hai aaj?",
			"Subah bakhair Boss! Coffee pi li kya?",
		},
	},
	{
		Patterns: []string{"good night", "sona", "raat"},
		Answers: []string{
			"Good night Boss! Aaram karo. Main yaheen hun.",
			"Sweet dreams Boss!",
		},
	},
	{
		Patterns: []string{"good afternoon", "dopahar"},
		Answers: []string{
			"Good afternoon Boss! Lunch ho gaya?",
			"Dopahar mubarak Boss!",
		},
	},
	{
		Patterns: []string{"good evening", "shaam"},
		Answers: []string{
			"Good evening Boss! Kaisa raha aaj ka din?",
			"Shaam ki dhoop mein baith ke chai pi lo Boss!",
		},
	},

	// Identity
	{
		Patterns: []string{"tera naam", "kaun hai tu", "who are you", "your name", "tum kaun"},
		Answers: []string{
			"Main Sakha hun, aapka personal voice assistant. Bina internet ke bhi kaam karta hun!",
			"Main Sakha hun Boss, ek smart voice assistant jo offline bhi chalta hai!",
		},
	},
	{
		Patterns: []string{"kaisa hai", "kya hal", "how are you", "theek hai"},
		Answers: []string{
			"Main bilkul theek hun Boss! System fully operational. Aapki seva ke liye taiyaar!",
			"Ekdum badiya Boss! Koi kaam batao.",
		},
	},
	{
		Patterns: []string{"thanks", "shukriya", "dhanyawad", "thank you", "shukriyaa"},
		Answers: []string{
			"Koi baat nahi Boss! Hamesha seva mein hoon.",
			"Bas yahi toh kaam hai mera Boss!",
		},
	},

	// General knowledge
	{
		Patterns: []string{"india ki rajdhani", "capital of india", "delhi"},
		Answers:  []string{"India ki rajdhani New Delhi hai Boss."},
	},
	{
		Patterns: []string{"bharat ki jansankhya", "india population"},
		Answers:  []string{"India ki aabadi lagbhag 1.4 arab se zyada hai, duniya mein sabse zyada!"},
	},
	{
		Patterns: []string{"sabse bada", "largest", "biggest"},
		Answers:  []string{"Duniya ka sabse bada desh Russia hai. India area mein 7th largest hai."},
	},
	{
		Patterns: []string{"android kya hai", "android kya", "what is android"},
		Answers:  []string{"Android ek mobile operating system hai jo Google ne banaya hai. Linux kernel pe based hai."},
	},
	{
		Patterns: []string{"ai kya hai", "artificial intelligence", "machine learning"},
		Answers:  []string{"AI matlab Artificial Intelligence, computers ko insaanon ki tarah sochne ki ability. Main bhi AI hun!"},
	},
	{
		Patterns: []string{"python", "java", "kotlin", "programming"},
		Answers:  []string{"Programming ek bahut powerful skill hai Boss! Kotlin Android ke liye best hai, Python AI ke liye."},
	},

	// Fun
	{
		Patterns: []string{"joke", "funny", "hasao", "hasna"},
		Answers: []string{
			"Programmer restaurant gaya, waiter ne pucha kya chahiye? Usne kaha: NULL.",
			"Bug fix karne mein 2 ghante, dhundne mein 6 ghante. Programmer ki zindagi!",
			"My code works. Main nahi jaanta kyon. Please mat chhuona!",
			"Stack Overflow ke bina programming, jaise paani ke bina swimming!",
			"Ek developer ke 3 bacche the: 0, 1 aur... uska naam 2 tha.",
		},
	},
	{
		Patterns: []string{"shayari", "poetry", "poem", "sher"},
		Answers: []string{
			"Code likhta hun raat ko, bugs aate hain subah ko. Phir bhi rukta nahi, programmer hun main!",
			"Keyboard pe ungliyaan naachti hain, sapne ban jaate hain code mein.",
			"Zindagi ka algorithm simple hai: error aaye toh debug karo, kaam chale toh deploy karo!",
		},
	},
	{
		Patterns: []string{"quote", "motivation", "inspire", "himmat", "hausla"},
		Answers: []string{
			"Steve Jobs: Stay Hungry, Stay Foolish. Aap bhi aise hi raho Boss!",
			"Har ek expert pehle beginner tha. Chaltey raho Boss!",
			"Code karo, fail karo, seekho, repeat karo. Yahi success ka formula hai!",
			"Mushkilein aati hain toh samjho, sahi raah pe ho!",
		},
	},
	{
		Patterns: []string{"fact", "interesting", "did you know", "kya pata hai"},
		Answers: []string{
			"Pehla computer bug ek asli kira tha. 1947 mein ek moth computer mein ghus gayi!",
			"Google ka naam 'Googol' se aaya: 1 ke baad 100 zeros!",
			"WhatsApp ke founders pehle Facebook mein apply kar chuke the, reject ho gaye the!",
			"Instagram ka pehla photo ek kutta tha!",
			"Android ka naam 'Andy Rubin' ke nickname se aaya.",
		},
	},
	{
		Patterns: []string{"riddle", "paheli", "puzzle"},
		Answers: []string{
			"Paheli: Main hamesha aage jaata hun, kabhi peeche nahi aata. Kaun hun main? Samay!",
			"Paheli: Jitna daalo utna khali ho jaata hun. Main kaun? Akash!",
			"Paheli: Duniya mein sabse tez kya hai? Dimag, ek pal mein sab soch leta hai!",
		},
	},
	{
		Patterns: []string{"story", "kahani", "batao koi"},
		Answers: []string{
			"Ek baar ki baat hai: ek chhota developer tha jiske paas ek bada sapna tha. Raat din code kiya. " +
				"Ek din uski app duniya bhaar mein mashoor ho gayi. Woh developer aap ho Boss, bas mehnat karte raho!",
		},
	},

	// Health
	{
		Patterns: []string{"health", "sehat", "timing", "tips"},
		Answers: []string{
			"Boss, phone se thodi break lo. Aankhen aaram karengi. 20-20-20 rule: har 20 min mein 20 sec door dekho.",
			"Paani piyo, stretch karo, aur neend poori lo. Yahi success ka asli formula hai Boss!",
		},
	},
	{
		Patterns: []string{"neend", "sleep", "so jaana"},
		Answers: []string{
			"7-8 ghante ki neend zaroori hai Boss. Phone rakh do aur aaramse so jaao, main handle kar lunga!",
		},
	},

	// Farewells
	{
		Patterns: []string{"bye", "alvida", "tata", "goodbye"},
		Answers: []string{
			"Alvida Boss! Zaroorat ho toh bulaana, main yaheen hun!",
			"Bye Boss! Take care!",
		},
	},

	// Capabilities
	{
		Patterns: []string{"kya kar sakta hai", "features", "help", "madad"},
		Answers: []string{
			"Boss main bahut kuch kar sakta hun! Call, message, apps open, alarm, music, settings, " +
				"weather search, aur bhi bahut kuch. Kuch bolo, main karunga!",
		},
	},

	// Easter eggs
	{
		Patterns: []string{"jarvis", "iron man", "tony stark"},
		Answers:  []string{"Main Sakha hun Boss, Jarvis se bhi better version!"},
	},
	{
		Patterns: []string{"siri", "alexa", "cortana", "google assistant"},
		Answers: []string{
			"Unse better hun Boss: main offline bhi kaam karta hun, free hun, aur fully customizable hun!",
		},
	},
}
