package render

import (
	"fmt"
	"html/template"
	"io"
	"math/rand"
)

var studyTemplate = template.Must(template.New("study").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Vocabulary Study Guide</title>
<style>
body { font-family: Georgia, serif; max-width: 840px; margin: 0 auto; padding: 24px; background: #f7f6f2; color: #222; }
h1 { text-align: center; border-bottom: 3px solid #667eea; padding-bottom: 12px; }
.word-entry { background: #fff; border-radius: 8px; padding: 20px 24px; margin: 18px 0; box-shadow: 0 2px 6px rgba(0,0,0,0.08); }
.word-title { font-size: 1.6em; font-weight: bold; color: #4a4a8a; }
.meaning { font-style: italic; margin: 8px 0 14px; }
.section-title { font-weight: bold; margin-top: 12px; color: #667eea; }
.synonyms span, .antonyms span { display: inline-block; background: #eef; border-radius: 12px; padding: 2px 10px; margin: 3px; }
.antonyms span { background: #fee; }
.sentence { margin: 6px 0; padding-left: 12px; border-left: 3px solid #ddd; }
.origin { margin-top: 8px; color: #555; }
</style>
</head>
<body>
<h1>Vocabulary Study Guide</h1>
<p>{{len .}} words</p>
{{range .}}<div class="word-entry" id="{{.Word}}">
<div class="word-title">{{.Word}}</div>
<div class="meaning">{{.Meaning}}</div>
<div class="section-title">Synonyms</div>
<div class="synonyms">{{range .Synonyms}}<span>{{.}}</span>{{end}}</div>
<div class="section-title">Antonyms</div>
<div class="antonyms">{{range .Antonyms}}<span>{{.}}</span>{{end}}</div>
<div class="section-title">Example Sentences</div>
<div class="sentences">{{range .Sentences}}<div class="sentence">{{.}}</div>{{end}}</div>
<div class="section-title">Origin</div>
<div class="origin">{{.Origin}}</div>
</div>
{{end}}</body>
</html>
`))

// StudyHTML writes the study page for the given entries.
func StudyHTML(w io.Writer, entries []Entry) error {
	if err := studyTemplate.Execute(w, entries); err != nil {
		return fmt.Errorf("render study page: %w", err)
	}
	return nil
}

// Question is one multiple-choice quiz item: pick the meaning of the word.
type Question struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// quizOptions is the number of choices per question.
const quizOptions = 4

// BuildQuiz turns entries into multiple-choice questions, drawing wrong
// options from the other entries' meanings. Entries without a meaning, or
// runs too small to supply distractors, yield no questions.
func BuildQuiz(entries []Entry, rng *rand.Rand) []Question {
	var pool []Entry
	for _, e := range entries {
		if e.Word != "" && e.Meaning != "" {
			pool = append(pool, e)
		}
	}
	if len(pool) < quizOptions {
		return nil
	}

	questions := make([]Question, 0, len(pool))
	for i, e := range pool {
		options := []string{e.Meaning}
		for _, j := range rng.Perm(len(pool)) {
			if len(options) == quizOptions {
				break
			}
			if j == i {
				continue
			}
			options = append(options, pool[j].Meaning)
		}
		answer := rng.Intn(len(options))
		options[0], options[answer] = options[answer], options[0]
		questions = append(questions, Question{Word: e.Word, Options: options, Answer: answer})
	}
	return questions
}

var quizTemplate = template.Must(template.New("quiz").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Vocabulary Quiz</title>
<style>
body { font-family: 'Segoe UI', sans-serif; max-width: 720px; margin: 0 auto; padding: 24px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; }
.quiz-container { background: #fff; border-radius: 12px; padding: 28px; box-shadow: 0 8px 24px rgba(0,0,0,0.2); }
h1 { text-align: center; color: #4a4a8a; }
.question { margin: 20px 0; }
.prompt { font-size: 1.3em; font-weight: bold; margin-bottom: 10px; }
.option { display: block; width: 100%; text-align: left; margin: 6px 0; padding: 10px 14px; border: 2px solid #ddd; border-radius: 8px; background: #fafafa; cursor: pointer; font-size: 1em; }
.option.correct { border-color: #2e9e5b; background: #e6f7ec; }
.option.wrong { border-color: #c0392b; background: #fdecea; }
.score { text-align: center; font-size: 1.2em; margin-top: 16px; }
</style>
</head>
<body>
<div class="quiz-container">
<h1>Vocabulary Quiz</h1>
<div id="question" class="question"></div>
<div class="score">Score: <span id="score">0</span> / <span id="asked">0</span></div>
</div>
<script>
const questions = {{.}};
let current = 0, score = 0, asked = 0;
function show() {
  if (questions.length === 0) return;
  const q = questions[current % questions.length];
  const div = document.getElementById('question');
  div.innerHTML = '<div class="prompt">What does "' + q.word + '" mean?</div>';
  q.options.forEach((opt, i) => {
    const btn = document.createElement('button');
    btn.className = 'option';
    btn.textContent = opt;
    btn.onclick = () => answer(btn, i, q.answer);
    div.appendChild(btn);
  });
}
function answer(btn, picked, correct) {
  asked++;
  if (picked === correct) { score++; btn.classList.add('correct'); }
  else { btn.classList.add('wrong'); }
  document.getElementById('score').textContent = score;
  document.getElementById('asked').textContent = asked;
  current++;
  setTimeout(show, 800);
}
show();
</script>
</body>
</html>
`))

// QuizHTML writes the quiz page for the given questions.
func QuizHTML(w io.Writer, questions []Question) error {
	if err := quizTemplate.Execute(w, questions); err != nil {
		return fmt.Errorf("render quiz page: %w", err)
	}
	return nil
}
