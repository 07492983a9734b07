package services

const complaintEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 560px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1d4ed8; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 22px; }
  .content { padding: 30px; }
  .status { font-size: 18px; font-weight: bold; color: #1d4ed8; background-color: #f1f3f5; padding: 10px 16px; border-radius: 5px; display: inline-block; margin: 12px 0; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>%s</p>
      <div class="status">%s</div>
      <p>%s</p>
    </div>
    <div class="footer">
      <p>&copy; %d Grievance Portal. This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>`
